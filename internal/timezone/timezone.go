package timezone

import "time"

// DefaultTimezone cobre empresas cadastradas sem fuso: o público inicial
// do produto está no Brasil.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location nunca falha: fuso desconhecido ou vazio cai no default.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn é o "agora" na parede da empresa; é a base das checagens de
// antecedência mínima e dos carimbos de transição de status.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
