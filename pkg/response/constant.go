package response

// Response messages and codes
const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
	TooManyRequestsCode     = 429
	TooManyRequestsMessage  = "Too many requests"
	CanceledCode            = 499
	CanceledMessage         = "Request canceled"
	UnauthorizedCode        = 401
	UnauthorizedMessage     = "Unauthorized"
)
