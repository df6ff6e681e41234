package domain

import "errors"

// Domain errors.
var (
	ErrProviderStatus       = errors.New("provedor de tradução retornou status de erro")
	ErrProviderEmptyBody    = errors.New("provedor de tradução retornou corpo vazio")
	ErrProviderInvalidShape = errors.New("resposta do provedor sem lista de traduções utilizável")
	ErrGeolocationDisabled  = errors.New("geolocalização por IP não configurada")
	ErrLanguageUnknown      = errors.New("idioma não reconhecido")
)
