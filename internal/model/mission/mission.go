package mission

// Mission is one gamified daily task offered to the patient.
type Mission struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}

// DailySelection is the persisted record of the missions drawn for one
// calendar day. It is overwritten whenever the stored date no longer
// matches the current day.
type DailySelection struct {
	Date     string    `json:"date"`
	Missions []Mission `json:"missions"`
}

// Catalog provides the fixed mission pool the daily selection draws from.
func Catalog() []Mission {
	return []Mission{
		{Title: "Registra tu glucosa tres veces hoy"},
		{Title: "Camina 30 minutos"},
		{Title: "Toma 8 vasos de agua"},
		{Title: "Conversa con tu asistente sobre cómo te sientes"},
		{Title: "Come una porción de verduras en cada comida"},
		{Title: "Revisa tus pies antes de dormir"},
	}
}
