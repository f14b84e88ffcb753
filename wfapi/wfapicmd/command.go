package wfapicmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/caarlos0/env/v11"
	"github.com/jessevdk/go-flags"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"github.com/tedsuo/ifrit/http_server"
	"github.com/tedsuo/ifrit/sigmon"

	"github.com/gx4ki/middlelayer"
	"github.com/gx4ki/middlelayer/tracing"
	"github.com/gx4ki/middlelayer/wfapi/api"
	"github.com/gx4ki/middlelayer/wfapi/backend"
	"github.com/gx4ki/middlelayer/wfapi/catalog"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
	"github.com/gx4ki/middlelayer/wfapi/metric"
	"github.com/gx4ki/middlelayer/wfapi/storage"
)

// KubernetesBackend is the only workflow backend this build can drive.
const KubernetesBackend = "kubernetes"

// RunCommand is the `middlelayer` process: the workflow API plus the orphan
// sweeper, supervised as one group.
type RunCommand struct {
	Logger LagerFlag

	BindIP   string `long:"bind-ip" default:"0.0.0.0" description:"IP address on which to listen for API traffic."`
	BindPort uint16 `long:"bind-port" default:"8080" description:"Port on which to listen for API traffic."`

	ConfigFile string `long:"config" env:"MIDDLELAYER_CONFIG" description:"Path to a section-keyed configuration file, read before flags."`
	AssetDir   string `long:"asset-dir" env:"MIDDLELAYER_ASSET_DIR" default:"assets" description:"Directory holding the service description files."`

	WorkflowAPI struct {
		User        string `long:"user" ini-name:"workflow_api_user" env:"WORKFLOW_API_USER" default:"dummy-user" description:"User whose result bucket this deployment serves."`
		AccessToken string `long:"access-token" ini-name:"workflow_api_access_token" env:"WORKFLOW_API_ACCESS_TOKEN" description:"Static token callers must present in the access-token header."`

		InstantRemoval     bool          `long:"instant-removal" ini-name:"workflow_api_instant_removal" env:"WORKFLOW_API_INSTANT_REMOVAL" default:"true" description:"Remove cluster objects as soon as a workflow finishes."`
		RemovalGracePeriod time.Duration `long:"removal-grace-period" ini-name:"workflow_api_removal_grace_period" env:"WORKFLOW_API_REMOVAL_GRACE_PERIOD" default:"15m" description:"How long finished workflow pods linger when instant removal is off."`

		Backend         string `long:"backend" ini-name:"workflow_backend" env:"WORKFLOW_BACKEND" default:"kubernetes" description:"Workflow backend to run jobs on. Only kubernetes is supported."`
		Kubeconfig      string `long:"backend-kubeconfig" ini-name:"workflow_backend_kubeconfig" env:"WORKFLOW_BACKEND_KUBECONFIG" description:"Path to a kubeconfig file. Empty selects in-cluster configuration."`
		Namespace       string `long:"backend-namespace" ini-name:"workflow_backend_namespace" env:"WORKFLOW_BACKEND_NAMESPACE" default:"default" description:"Kubernetes namespace workflow objects are created in."`
		ImagePullSecret string `long:"backend-image-pull-secret" ini-name:"workflow_backend_image_pull_secret" env:"WORKFLOW_BACKEND_IMAGE_PULL_SECRET" description:"Name of the image pull secret attached to workflow pods."`
		SideCarImage    string `long:"backend-data-side-car-image" ini-name:"workflow_backend_data_side_car_image" env:"WORKFLOW_BACKEND_DATA_SIDE_CAR_IMAGE" description:"Image run as the data side-car and the data-input-init container."`
		JobStorageType  string `long:"backend-job-storage-type" ini-name:"workflow_backend_job_storage_type" env:"WORKFLOW_BACKEND_JOB_STORAGE_TYPE" default:"empty_dir" choice:"empty_dir" choice:"persistent_volume_claim" description:"Backing of the shared job volume."`
		JobStorageSize  string `long:"backend-job-storage-size" ini-name:"workflow_backend_job_storage_size" env:"WORKFLOW_BACKEND_JOB_STORAGE_SIZE" default:"2Gi" description:"Size of the shared job volume."`

		SweepInterval time.Duration `long:"sweep-interval" ini-name:"workflow_backend_sweep_interval" env:"WORKFLOW_BACKEND_SWEEP_INTERVAL" default:"5m" description:"How often the orphan sweeper scans for leftover cluster objects."`
	} `group:"workflow_api"`

	Minio storage.Config `group:"minio" namespace:"minio"`

	Metrics tracing.MetricsConfig `group:"metrics" namespace:"metrics"`
	Tracing tracing.Config        `group:"tracing" namespace:"tracing"`
}

// LoadConfig layers the configuration file and the process environment under
// the command line: flags beat environment variables, which beat the file,
// which beats built-in defaults. Call it before parser.Parse.
func (cmd *RunCommand) LoadConfig(parser *flags.Parser, path string) error {
	if path != "" {
		if err := flags.NewIniParser(parser).ParseFile(path); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cmd); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}

	return nil
}

func (cmd *RunCommand) Execute(args []string) error {
	runner, err := cmd.Runner(args)
	if err != nil {
		return err
	}

	return <-ifrit.Invoke(sigmon.New(runner)).Wait()
}

func (cmd *RunCommand) Runner(args []string) (ifrit.Runner, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("unexpected positional arguments: %v", args)
	}

	if cmd.WorkflowAPI.Backend != KubernetesBackend {
		return nil, &k8s.Error{
			Kind: k8s.KindInvalid,
			Op:   "select workflow backend",
			Err:  fmt.Errorf("unsupported workflow backend %q", cmd.WorkflowAPI.Backend),
		}
	}

	if cmd.WorkflowAPI.AccessToken == "" {
		return nil, fmt.Errorf("no access token configured (set workflow_api_access_token)")
	}

	logger, _ := cmd.Logger.Logger("middlelayer")

	if err := cmd.Tracing.Prepare(context.Background()); err != nil {
		return nil, fmt.Errorf("prepare tracing: %w", err)
	}

	meterProvider, meterShutdown, err := cmd.Metrics.MeterProvider()
	if err != nil {
		return nil, fmt.Errorf("prepare metrics export: %w", err)
	}
	if meterProvider != nil {
		tracing.ConfigureMeterProvider(meterProvider)
	}
	metric.InitOTelMetrics()

	serviceCatalog, err := catalog.Load(logger, cmd.AssetDir)
	if err != nil {
		return nil, fmt.Errorf("load service catalog: %w", err)
	}

	store, err := storage.NewStore(cmd.Minio, cmd.WorkflowAPI.User)
	if err != nil {
		return nil, err
	}

	backendConfig := k8s.NewConfig(cmd.WorkflowAPI.Namespace, cmd.WorkflowAPI.Kubeconfig)
	backendConfig.ImagePullSecret = cmd.WorkflowAPI.ImagePullSecret
	backendConfig.SideCarImage = cmd.WorkflowAPI.SideCarImage
	backendConfig.JobStorageType = k8s.StorageType(cmd.WorkflowAPI.JobStorageType)
	if cmd.WorkflowAPI.JobStorageSize != "" {
		backendConfig.JobStorageSize = cmd.WorkflowAPI.JobStorageSize
	}
	if err := backendConfig.Validate(); err != nil {
		return nil, err
	}

	clientset, err := k8s.NewClientset(backendConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to cluster: %w", err)
	}

	restConfig, err := k8s.RestConfig(backendConfig)
	if err != nil {
		return nil, fmt.Errorf("load cluster rest config: %w", err)
	}

	adapter := k8s.New(clientset, restConfig, backendConfig)
	registry := backend.NewRegistry()
	monitor := metric.NewMonitor()
	engine := backend.NewEngine(adapter, registry, monitor)

	clk := clock.NewClock()

	apiServer := api.NewServer(
		logger,
		serviceCatalog,
		store,
		engine,
		monitor,
		clk,
		cmd.WorkflowAPI.InstantRemoval,
		cmd.WorkflowAPI.RemovalGracePeriod,
	)

	handler, err := api.NewHandler(logger, apiServer, monitor, cmd.WorkflowAPI.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("construct handler: %w", err)
	}

	sweeper := k8s.NewSweeper(logger, adapter, cmd.WorkflowAPI.SweepInterval, clk, registry.Live)

	listenAddr := net.JoinHostPort(cmd.BindIP, strconv.Itoa(int(cmd.BindPort)))

	members := grouper.Members{
		{
			Name:   "api",
			Runner: http_server.New(listenAddr, handler),
		},
		{
			Name:   "sweeper",
			Runner: sweeper,
		},
	}

	group := grouper.NewParallel(os.Interrupt, members)

	setup := func(ctx context.Context) error {
		return store.EnsureBucket(lagerctx.NewContext(ctx, logger))
	}

	onReady := func() {
		logger.Info("listening", lager.Data{
			"addr":      listenAddr,
			"namespace": backendConfig.Namespace,
			"version":   middlelayer.Version,
		})
	}

	onExit := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if meterShutdown != nil {
			_ = meterShutdown(ctx)
		}
		_ = tracing.Shutdown(ctx)
	}

	return run(group, setup, onReady, onExit), nil
}

func run(group ifrit.Runner, setup func(context.Context) error, onReady func(), onExit func()) ifrit.Runner {
	return ifrit.RunFunc(func(signals <-chan os.Signal, ready chan<- struct{}) error {
		if err := setup(context.Background()); err != nil {
			return err
		}

		process := ifrit.Background(group)

		subExited := process.Wait()
		subReady := process.Ready()

		for {
			select {
			case <-subReady:
				onReady()
				close(ready)
				subReady = nil
			case err := <-subExited:
				onExit()
				return err
			case sig := <-signals:
				process.Signal(sig)
			}
		}
	})
}
