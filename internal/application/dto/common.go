package dto

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination parámetros comunes de paginación ya saneados.
type Pagination struct {
	Limit  int
	Offset int
}

// NormalizePagination aplica límites razonables: page >= 1, 1 <= size <= 100.
func NormalizePagination(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return Pagination{Limit: size, Offset: (page - 1) * size}
}
