package validators

import "regexp"

// Telefone em formato E.164: "+" seguido de 8 a 15 dígitos.
var phoneRe = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}
