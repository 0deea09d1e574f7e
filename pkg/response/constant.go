package response

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404

	DateTimeFormat = "2006-01-02 15:04:05"
)
