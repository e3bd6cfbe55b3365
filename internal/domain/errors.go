package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado   = errors.New("el email ya está registrado")
	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrNoAutorizado        = errors.New("no autorizado")
	ErrAccesoDenegado      = errors.New("acceso denegado")

	// Consecutivos: asignación de bloques y avance del cursor.
	ErrPropietarioInvalido = errors.New("propietario del bloque inválido")
	ErrModuloDesconocido   = errors.New("módulo de consecutivos desconocido")
	ErrContadorNoExiste    = errors.New("el contador de consecutivos no existe")
	ErrConflictoAsignacion = errors.New("conflicto al reservar bloque de consecutivos")
	ErrBloqueAgotado       = errors.New("bloque agotado y la reasignación falló")

	// Caja e inventario.
	ErrMontoInvalido     = errors.New("monto inválido")
	ErrSaldoInsuficiente = errors.New("saldo en caja insuficiente")
	ErrStockInsuficiente = errors.New("stock insuficiente")

	// Fallo transaccional genérico tras agotar los reintentos del runner.
	ErrTransaccionAbortada = errors.New("transacción abortada por conflicto")
)
