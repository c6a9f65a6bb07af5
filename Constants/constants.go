package Constants

import "os"

// EvolutionEditWindowHours is how long a clinical note stays editable after
// it is created. After this window only reading and exporting are allowed.
const EvolutionEditWindowHours = 24

// MaxGenerationDays bounds the session generator's forward walk.
const MaxGenerationDays = 365

var WhatsappGoService = getEnv("WHATSAPP_SERVICE_URL", "http://localhost:3000")

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
