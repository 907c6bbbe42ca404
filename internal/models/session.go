package models

// Session — снимок представления клиента о текущей личности.
//
// IsAuthenticated всегда выводится как User != nil и никогда — из факта
// наличия сохранённого credential: токен может быть просрочен или отозван
// сервером при формально «живой» записи в хранилище.
type Session struct {
	User            *User
	IsAuthenticated bool
	Loading         bool
}
