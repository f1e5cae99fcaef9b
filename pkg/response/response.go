package response

// Envelope is the uniform JSON body returned by every handler.
type Envelope struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// Pagination is attached to list responses under "meta".
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func SuccessWithMeta(message string, data, meta interface{}) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

func Error(code, message string, data interface{}) Envelope {
	return Envelope{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
