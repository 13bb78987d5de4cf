package dto

// PageRequest límite para listados.
type PageRequest struct {
	Limit int `query:"limit" validate:"min=1,max=500"`
}

// DefaultPage aplica el valor por defecto si Limit es cero o excede el máximo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
