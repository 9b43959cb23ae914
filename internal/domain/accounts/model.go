package accounts

import "time"

// Account es la identidad local: email+password o cuenta creada vía OAuth
// (en ese caso PasswordHash queda vacío y OAuthSubject identifica al usuario
// en el proveedor externo).
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	OAuthSubject string

	CreatedAt time.Time
}

// Profile es el registro de display-name que el dashboard muestra.
// Se garantiza su existencia en el primer sign-in (incluido OAuth callback).
type Profile struct {
	UserID    string
	Name      string
	CreatedAt time.Time
}
