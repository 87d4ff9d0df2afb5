package revalidate

// Chaves de invalidação de cache da camada de apresentação.
// O core só devolve a lista; quem invalida é o front.
const (
	PathDashboard           = "/dashboard"
	PathAppointments        = "/dashboard/appointments"
	PathPendingAppointments = "/dashboard/appointments/pending"
)

// OnAppointmentChange lista as views afetadas por qualquer mutação
// de agendamento (criação ou transição de status).
func OnAppointmentChange() []string {
	return []string{
		PathAppointments,
		PathDashboard,
		PathPendingAppointments,
	}
}
