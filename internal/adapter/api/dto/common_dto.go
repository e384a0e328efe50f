package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse representa uma resposta genérica de sucesso
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ListResponse é a resposta das listagens
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// NewListResponse monta a resposta de listagem
func NewListResponse(items interface{}, total int) ListResponse {
	return ListResponse{Items: items, Total: total}
}

// BulkDeleteRequest representa os IDs de uma remoção em lote
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteResponse informa quantos registros foram removidos
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// HealthResponse é a resposta do health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Storage string `json:"storage"`
	Time    string `json:"time"`
}
