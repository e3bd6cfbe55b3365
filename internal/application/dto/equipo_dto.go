package dto

// EquipoResponse identidad del terminal que atiende esta instancia.
type EquipoResponse struct {
	EquipoID string `json:"equipo_id"`
	Alias    string `json:"alias"`
}

// AliasRequest cambio del alias humano del equipo.
type AliasRequest struct {
	Alias string `json:"alias"`
}
