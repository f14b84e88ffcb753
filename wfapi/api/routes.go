package api

import "github.com/tedsuo/rata"

const (
	ListServices    = "ListServices"
	GetServiceInfo  = "GetServiceInfo"
	UploadInput     = "UploadInput"
	GetOutput       = "GetOutput"
	ListWorkflows   = "ListWorkflows"
	ExecuteWorkflow = "ExecuteWorkflow"
	StopWorkflow    = "StopWorkflow"
	WorkflowStatus  = "WorkflowStatus"
	WorkflowResults = "WorkflowResults"
	FollowLogs      = "FollowLogs"
	Health          = "Health"
	Metrics         = "Metrics"
)

var Routes = rata.Routes{
	{Path: "/services/", Method: "GET", Name: ListServices},
	{Path: "/services/:service_id/info", Method: "GET", Name: GetServiceInfo},
	{Path: "/services/:service_id/input/:resource", Method: "PUT", Name: UploadInput},
	{Path: "/services/:service_id/output/:resource", Method: "GET", Name: GetOutput},
	{Path: "/services/:service_id/workflow/", Method: "GET", Name: ListWorkflows},
	{Path: "/services/:service_id/workflow/execute", Method: "POST", Name: ExecuteWorkflow},
	{Path: "/services/:service_id/workflow/stop/:workflow_id", Method: "POST", Name: StopWorkflow},
	{Path: "/services/:service_id/workflow/status/:workflow_id", Method: "GET", Name: WorkflowStatus},
	{Path: "/services/:service_id/workflow/results/:workflow_id", Method: "GET", Name: WorkflowResults},
	{Path: "/services/:service_id/workflow/logs/:workflow_id", Method: "GET", Name: FollowLogs},
	{Path: "/healthz", Method: "GET", Name: Health},
	{Path: "/metrics", Method: "GET", Name: Metrics},
}
