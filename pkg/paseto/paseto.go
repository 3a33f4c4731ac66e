package paseto

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Gestion-Solicitudes/config"
	"Gestion-Solicitudes/models"
)

var (
	pasetoInstance = paseto.NewV2()

	keyOnce      sync.Once
	symmetricKey []byte
	keyErr       error
)

func loadKey() ([]byte, error) {
	keyOnce.Do(func() {
		cfg := config.LoadConfig()

		decoded, err := base64.URLEncoding.DecodeString(cfg.PasetoSecret)
		if err != nil {
			decoded, err = base64.StdEncoding.DecodeString(cfg.PasetoSecret)
			if err != nil {
				keyErr = fmt.Errorf("no se pudo decodificar PASETO_SECRET: %w", err)
				return
			}
		}
		if len(decoded) != 32 {
			keyErr = fmt.Errorf("PASETO_SECRET debe tener exactamente 32 bytes decodificados, tiene %d", len(decoded))
			return
		}
		symmetricKey = decoded
	})
	return symmetricKey, keyErr
}

func GenerateToken(user *models.User) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: now.Add(24 * time.Hour),
		NotBefore:  now,
	}

	token.Set("user_id", user.ID.Hex())
	token.Set("name", user.Name)
	token.Set("email", user.Email)
	token.Set("role", user.Role)
	token.Set("section", user.Section)

	return pasetoInstance.Encrypt(key, token, "")
}

func ValidateToken(tokenString string) (*models.Claims, error) {
	key, err := loadKey()
	if err != nil {
		return nil, err
	}

	var token paseto.JSONToken
	var footer string
	if err := pasetoInstance.Decrypt(tokenString, key, &token, &footer); err != nil {
		return nil, fmt.Errorf("no se pudo descifrar el token: %w", err)
	}
	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("el token no es válido: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("user_id inválido en el token: %w", err)
	}

	return &models.Claims{
		UserID:  userID,
		Name:    token.Get("name"),
		Email:   token.Get("email"),
		Role:    token.Get("role"),
		Section: token.Get("section"),
	}, nil
}
