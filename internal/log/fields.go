package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldUserEmail   = "user_email"
	FieldUserID      = "user_id"
	FieldSessionID   = "session_id"
	FieldProjectID   = "project_id"
	FieldProjectName = "project_name"
	FieldRecordID    = "record_id"
	FieldRecordType  = "record_type"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDate        = "date"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentBackend  = "backend"
	ComponentSession  = "session"
	ComponentEvents   = "events"
	ComponentReport   = "report"
	ComponentExport   = "export"
	ComponentAudit    = "audit"
	ComponentTemplate = "template"
)

// Operations defines standard operation names
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpLogout   = "logout"
	OpLookup   = "lookup"
	OpList     = "list"
	OpCreate   = "create"
	OpRender   = "render"
	OpExport   = "export"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
