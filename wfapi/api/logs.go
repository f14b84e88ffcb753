package api

import (
	"bufio"
	"errors"
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/gorilla/websocket"
	"github.com/tedsuo/rata"

	"github.com/gx4ki/middlelayer/wfapi/backend"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// cross-origin clients authenticate with the access token
		return true
	},
}

// maxLogLine bounds a single scanned log line.
const maxLogLine = 1024 * 1024

// FollowLogs upgrades the connection to a websocket and streams the worker
// container's log line by line, until the log ends or the client hangs up.
func (s *Server) FollowLogs(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	workflowID := rata.Param(r, "workflow_id")
	logger := s.logger.Session("follow-logs", lager.Data{
		"workflow": workflowID,
	})

	if _, ok := s.catalog.Get(serviceID); !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	logs, err := s.engine.FollowWorkerLog(lagerctx.NewContext(r.Context(), logger), workflowID)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnknownWorkflow):
			writeError(w, http.StatusBadRequest, "invalid workflow_id")
		case errors.Is(err, backend.ErrNoWorkerPod):
			writeError(w, http.StatusBadRequest, "workflow has no worker pod")
		default:
			logger.Error("follow-log-failed", err)
			writeError(w, http.StatusInternalServerError, "could not follow worker log")
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request
		logger.Error("upgrade-failed", err)
		logs.Close()
		return
	}

	defer conn.Close()
	defer logs.Close()

	// closing the log stream unblocks the scanner when the client hangs up
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logs.Close()
				return
			}
		}
	}()

	scanner := bufio.NewScanner(logs)
	scanner.Buffer(make([]byte, 64*1024), maxLogLine)
	for scanner.Scan() {
		if err := conn.WriteMessage(websocket.TextMessage, scanner.Bytes()); err != nil {
			logger.Debug("client-gone")
			return
		}
	}

	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "log ended"),
	)
	logger.Debug("done")
}
