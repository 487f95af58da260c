package errors

// ErrorCode identifies an application error class. Codes are stable and
// returned to clients, so values must never be reused.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Identity
	ErrorCode_SESSION_INVALID           ErrorCode = 2000
	ErrorCode_SESSION_EXPIRED           ErrorCode = 2001
	ErrorCode_USER_NOT_SYNCED           ErrorCode = 2002
	ErrorCode_WEBHOOK_INVALID_SIGNATURE ErrorCode = 2003

	// Meetings & tasks
	ErrorCode_MEETING_NOT_FOUND       ErrorCode = 3000
	ErrorCode_TASK_NOT_FOUND          ErrorCode = 3001
	ErrorCode_TRANSCRIPT_REQUIRED     ErrorCode = 3002
	ErrorCode_TASK_ALREADY_COMPLETED  ErrorCode = 3003
	ErrorCode_MEETING_FIELDS_REQUIRED ErrorCode = 3004

	// AI extraction
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 4000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4001
	ErrorCode_AI_RESPONSE_UNPARSABLE  ErrorCode = 4002

	// Storage
	ErrorCode_STORAGE_FAILED     ErrorCode = 5000
	ErrorCode_FILE_TOO_LARGE     ErrorCode = 5001
	ErrorCode_FILE_NOT_FOUND     ErrorCode = 5002
	ErrorCode_FILE_NOT_PROVIDED  ErrorCode = 5003

	// Database
	ErrorCode_DB_CONNECTION_FAILED   ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED        ErrorCode = 6001
	ErrorCode_DB_TRANSACTION_FAILED  ErrorCode = 6002
	ErrorCode_DB_CONSTRAINT_VIOLATED ErrorCode = 6003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_SESSION_INVALID:           "SESSION_INVALID",
	ErrorCode_SESSION_EXPIRED:           "SESSION_EXPIRED",
	ErrorCode_USER_NOT_SYNCED:           "USER_NOT_SYNCED",
	ErrorCode_WEBHOOK_INVALID_SIGNATURE: "WEBHOOK_INVALID_SIGNATURE",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
	ErrorCode_TASK_NOT_FOUND:            "TASK_NOT_FOUND",
	ErrorCode_TRANSCRIPT_REQUIRED:       "TRANSCRIPT_REQUIRED",
	ErrorCode_TASK_ALREADY_COMPLETED:    "TASK_ALREADY_COMPLETED",
	ErrorCode_MEETING_FIELDS_REQUIRED:   "MEETING_FIELDS_REQUIRED",
	ErrorCode_AI_ANALYSIS_FAILED:        "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:   "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_RESPONSE_UNPARSABLE:    "AI_RESPONSE_UNPARSABLE",
	ErrorCode_STORAGE_FAILED:            "STORAGE_FAILED",
	ErrorCode_FILE_TOO_LARGE:            "FILE_TOO_LARGE",
	ErrorCode_FILE_NOT_FOUND:            "FILE_NOT_FOUND",
	ErrorCode_FILE_NOT_PROVIDED:         "FILE_NOT_PROVIDED",
	ErrorCode_DB_CONNECTION_FAILED:      "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:     "DB_TRANSACTION_FAILED",
	ErrorCode_DB_CONSTRAINT_VIOLATED:    "DB_CONSTRAINT_VIOLATED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
