// Package catalog loads the service descriptions a deployment offers from
// its asset directory and answers service lookups for the HTTP layer.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"sigs.k8s.io/yaml"

	"github.com/gx4ki/middlelayer/wfapi"
)

// validityWindow is how long a loaded description is advertised as valid,
// measured from load time.
const validityWindow = 7 * 24 * time.Hour

// Validity is the advertised window during which a service accepts
// submissions.
type Validity struct {
	From  time.Time `json:"valid_from"`
	Until time.Time `json:"valid_until"`
}

// Entry is one loaded service description together with its validity.
type Entry struct {
	Description wfapi.ServiceDescription
	Validity    Validity
}

// Catalog is the immutable set of services loaded at startup.
type Catalog struct {
	entries map[string]Entry
	ids     []string
}

// Load reads every *.json and *.yaml service description under dir. Files
// with other extensions are skipped with a log line. A description that does
// not validate, or a service id declared twice, fails the load.
func Load(logger lager.Logger, dir string) (*Catalog, error) {
	logger = logger.Session("load-catalog", lager.Data{"dir": dir})

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset directory: %w", err)
	}

	now := time.Now()
	entries := map[string]Entry{}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			logger.Info("skipping-file", lager.Data{"file": file.Name()})
			continue
		}

		path := filepath.Join(dir, file.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read service description: %w", err)
		}

		var desc wfapi.ServiceDescription
		switch ext {
		case ".json":
			err = json.Unmarshal(content, &desc)
		default:
			err = yaml.Unmarshal(content, &desc)
		}
		if err != nil {
			return nil, fmt.Errorf("parse service description %s: %w", file.Name(), err)
		}

		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}

		if _, dup := entries[desc.ServiceID]; dup {
			return nil, fmt.Errorf("%s: service %q declared twice", file.Name(), desc.ServiceID)
		}

		entries[desc.ServiceID] = Entry{
			Description: desc,
			Validity: Validity{
				From:  now,
				Until: now.Add(validityWindow),
			},
		}
		logger.Debug("loaded-service", lager.Data{
			"service": desc.ServiceID,
			"file":    file.Name(),
		})
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	logger.Info("done", lager.Data{"services": len(entries)})

	return &Catalog{entries: entries, ids: ids}, nil
}

// Get returns the description registered under serviceID.
func (c *Catalog) Get(serviceID string) (wfapi.ServiceDescription, bool) {
	entry, ok := c.entries[serviceID]
	return entry.Description, ok
}

// IDs returns every registered service id in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// List returns the validity window per service id, the shape the service
// listing route reports.
func (c *Catalog) List() map[string]Validity {
	out := make(map[string]Validity, len(c.entries))
	for id, entry := range c.entries {
		out[id] = entry.Validity
	}
	return out
}
