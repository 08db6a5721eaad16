package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"

	RouteUsers = RouteApiV1 + "/users"
	RouteUser  = RouteUsers + "/:user_id"

	RouteFiles           = RouteApiV1 + "/files"
	RouteFile            = RouteFiles + "/:file_id"
	RouteFileDownloadURL = RouteFile + "/download-url"
	RouteFilesBulkDelete = RouteFiles + "/bulk-delete"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
