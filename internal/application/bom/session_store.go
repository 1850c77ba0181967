package bom

import "sync"

// SessionStore guarda la sesión de salida activa por operador. Cada operador
// posee a lo sumo una sesión; la sesión vive en memoria del proceso durante la
// jornada de picking (el cliente puede además persistirla serializada) y no
// sostiene ningún bloqueo sobre el ledger.
//
// Todo acceso pasa por Do: la sesión no se sincroniza a sí misma, y dos
// peticiones del mismo token (doble submit, reintento) mutarían StagedPicks a
// la vez o entrelazarían una toma con el recorrido del commit.
type SessionStore struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	sessions map[string]*OutboundSession
}

// NewSessionStore construye el almacén de sesiones.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		locks:    make(map[string]*sync.Mutex),
		sessions: make(map[string]*OutboundSession),
	}
}

func (s *SessionStore) lockFor(operatorID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[operatorID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[operatorID] = l
	}
	return l
}

// Do ejecuta fn con acceso exclusivo a la sesión del operador, serializando
// las peticiones concurrentes del mismo operador. fn recibe la sesión vigente
// (nil si no hay) y devuelve la que debe quedar guardada: nil la descarta,
// cualquier otra la reemplaza. El error de fn se propaga sin tocar esa regla,
// así un commit fallido conserva la sesión devolviéndola tal cual.
func (s *SessionStore) Do(operatorID string, fn func(current *OutboundSession) (*OutboundSession, error)) error {
	l := s.lockFor(operatorID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	current := s.sessions[operatorID]
	s.mu.Unlock()

	next, err := fn(current)

	s.mu.Lock()
	if next == nil {
		delete(s.sessions, operatorID)
	} else {
		s.sessions[operatorID] = next
	}
	s.mu.Unlock()
	return err
}
