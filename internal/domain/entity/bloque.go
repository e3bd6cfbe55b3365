package entity

import "time"

// TamanoBloquePorDefecto numeros reservados por asignación si el
// administrador no indica otro tamaño.
const TamanoBloquePorDefecto = 100

// ContadorSerie es el máximo global reservado de un módulo (lastReserved).
// Solo lo muta el asignador de bloques y nunca decrece. Los consumidores
// jamás lo leen para obtener "el siguiente número": eso sale del bloque.
type ContadorSerie struct {
	Modulo          Modulo
	UltimoReservado int64
	UpdatedAt       time.Time
}

// Bloque es un rango contiguo de consecutivos reservado para un
// (módulo, equipo, usuario). El equipo emite números del bloque sin tocar
// el contador global, lo que permite numerar sin conexión.
//
// Identidad: (Modulo, EquipoID, UsuarioUID). Al reasignar se sobrescribe el
// documento del mismo par, nunca se borra (los rangos viejos quedan como
// rastro de auditoría en el historial de la serie).
type Bloque struct {
	Modulo      Modulo
	EquipoID    string
	UsuarioUID  string
	Inicio      int64 // primer número del rango
	Fin         int64 // último número del rango (inclusive)
	Siguiente   int64 // cursor: Inicio <= Siguiente <= Fin+1
	Tamano      int
	AsignadoPor string // etiqueta del actor que pidió la reserva
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Agotado indica que el bloque ya no tiene números disponibles.
func (b *Bloque) Agotado() bool {
	return b.Siguiente > b.Fin
}

// Restantes números aún disponibles en el bloque.
func (b *Bloque) Restantes() int64 {
	if b.Agotado() {
		return 0
	}
	return b.Fin - b.Siguiente + 1
}
