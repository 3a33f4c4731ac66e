package repository

import "fmt"

// StoreWriteError envuelve un fallo de create/update contra el almacén.
// El estado local de la entidad afectada no cambia; el caller decide si
// reintenta. No hay reintentos automáticos en esta capa.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("fallo de escritura en el almacén (%s): %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// SubscriptionError envuelve un fallo al establecer o mantener un feed en
// vivo. La caché queda obsoleta hasta que una nueva suscripción prospere.
type SubscriptionError struct {
	Scope string
	Err   error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("fallo de suscripción (%s): %v", e.Scope, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }
