package dto

import "time"

// ReservaBloqueRequest reserva manual de un bloque desde la pantalla de
// configuración (tamaño 0 = por defecto).
type ReservaBloqueRequest struct {
	Modulo string `json:"modulo"`
	Tamano int    `json:"tamano"`
}

// BloqueResponse estado de un bloque de consecutivos.
type BloqueResponse struct {
	Modulo        string    `json:"modulo"`
	EquipoID      string    `json:"equipo_id"`
	UsuarioUID    string    `json:"usuario_uid"`
	Inicio        int64     `json:"inicio"`
	Fin           int64     `json:"fin"`
	Siguiente     int64     `json:"siguiente"`
	Tamano        int       `json:"tamano"`
	Restantes     int64     `json:"restantes"`
	AsignadoPor   string    `json:"asignado_por"`
	ActualizadoEn time.Time `json:"actualizado_en"`
}

// SiguienteNumeroResponse número consumido del bloque vigente.
type SiguienteNumeroResponse struct {
	Modulo string `json:"modulo"`
	Numero string `json:"numero"`
	Serial int64  `json:"serial"`
}
