package cleaning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTopFrac         = 0.15
	DefaultBottomFrac      = 0.15
	DefaultRepeatThreshold = 0.40
	DefaultAnnexTopFrac    = 0.30
)

// DefaultBannedSubstrings lists institutional, address and signature phrases
// found on Chamber of Deputies documents. Matching is case-insensitive.
var DefaultBannedSubstrings = []string{
	"câmara dos deputados",
	"gabinete do deputado",
	"gabinete do deputado federal",
	"assinado eletronicamente",
	"para verificar a assinatura",
	"@camara.leg.br",
	"praça dos três poderes",
	"cep 70160",
	"mesa",
	"deputado federal",
	"projeto de lei n",
	"projeto de lei nº",
	"gabinete",
}

// Config controls the cleaning heuristic. It is a plain value: the cleaner
// copies it on construction and never changes it.
type Config struct {
	// TopFrac and BottomFrac are the fractions of the page height where
	// running headers and footers are looked for.
	TopFrac    float64 `mapstructure:"top_frac" validate:"gte=0,lte=1"`
	BottomFrac float64 `mapstructure:"bottom_frac" validate:"gte=0,lte=1"`

	// RepeatThreshold is the fraction of pages a line has to appear on, in
	// the same zone, to be treated as a header or footer.
	RepeatThreshold float64 `mapstructure:"repeat_threshold" validate:"gt=0,lte=1"`

	// AnnexTopFrac is the fraction of the page height where an annex title
	// has to start.
	AnnexTopFrac         float64 `mapstructure:"annex_top_frac" validate:"gte=0,lte=1"`
	AnnexStrictUppercase bool    `mapstructure:"annex_strict_uppercase"`

	// RemoveFromAnnex drops the annex page and everything after it.
	RemoveFromAnnex bool `mapstructure:"remove_from_annex"`

	BannedSubstrings []string `mapstructure:"banned_substrings" validate:"dive,required"`
}

// DefaultConfig returns the configuration tuned for Chamber of Deputies bills.
func DefaultConfig() Config {
	return Config{
		TopFrac:              DefaultTopFrac,
		BottomFrac:           DefaultBottomFrac,
		RepeatThreshold:      DefaultRepeatThreshold,
		AnnexTopFrac:         DefaultAnnexTopFrac,
		AnnexStrictUppercase: true,
		RemoveFromAnnex:      false,
		BannedSubstrings:     append([]string(nil), DefaultBannedSubstrings...),
	}
}

// Fingerprint identifies the cleaning behaviour of c. Two configurations
// with the same fingerprint clean every document the same way.
func (c Config) Fingerprint() string {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

var validate = validator.New()

// Validate checks that every fraction is within range and that no banned
// substring is empty.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, strings.TrimSpace(fmt.Sprintf("%s must satisfy %s %s", e.Namespace(), e.Tag(), e.Param())))
			}
			return fmt.Errorf("invalid cleaning config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid cleaning config: %w", err)
	}
	return nil
}
