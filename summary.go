package proptext

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Sentiments are the seven nuances a summary's sentiment is graded in.
var Sentiments = []string{
	"extremamente-positivo",
	"positivo",
	"positivo-neutro",
	"neutro",
	"negativo-neutro",
	"negativo",
	"extremamente-negativo",
}

// Ideologies are the seven positions a proposition can be placed at.
var Ideologies = []string{
	"extrema-esquerda",
	"esquerda",
	"centro-esquerda",
	"centro",
	"centro-direita",
	"direita",
	"extrema-direita",
}

// Topics are the policy areas a proposition is classified into.
var Topics = []string{
	"Administração Pública",
	"Direitos Humanos e Minorias",
	"Segurança Pública",
	"Defesa Nacional",
	"Finanças e Orçamento",
	"Tributação e Reforma Tributária",
	"Saúde Pública",
	"Educação",
	"Previdência Social",
	"Assistência Social",
	"Trabalho e Emprego",
	"Desenvolvimento Regional",
	"Infraestrutura e Logística",
	"Transporte",
	"Energia e Recursos Naturais",
	"Meio Ambiente e Sustentabilidade",
	"Mudanças Climáticas",
	"Agricultura, Pecuária e Extrativismo",
	"Ciência, Tecnologia e Inovação",
	"Comunicações",
	"Proteção de Dados e Segurança Digital",
	"Regulação de Inteligência Artificial",
	"Cultura",
	"Esporte",
	"Habilitação",
	"Urbanismo",
	"Justiça e Sistema Judiciário",
	"Combate à Violência Doméstica",
	"Direitos das Pessoas com Deficiência",
	"Políticas para Povos Indígenas e Comunidades Tradicionais",
}

// Entity is a named entity recognized in a proposition, e.g. {"data", "06 de nov. de 2025"}.
type Entity struct {
	Type  string `validate:"required"`
	Value string `validate:"required"`
}

type Summary struct {
	PropositionID PropositionID
	TextSummary   string `validate:"required"`
	MainTheme     string `validate:"required"`
	Sentiment     string
	Ideology      string
	Entities      []Entity `validate:"dive"`
}

var validate = validator.New()

// Validate checks the summary is complete and graded with known values.
func (s Summary) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid summary: %w", err)
	}
	if !slices.Contains(Sentiments, s.Sentiment) {
		return fmt.Errorf("invalid summary: unknown sentiment %q", s.Sentiment)
	}
	if !slices.Contains(Ideologies, s.Ideology) {
		return fmt.Errorf("invalid summary: unknown ideology %q", s.Ideology)
	}
	return nil
}

type TopicClassification struct {
	PropositionID PropositionID
	Topic         string
}

func (t TopicClassification) Validate() error {
	if !slices.Contains(Topics, t.Topic) {
		return fmt.Errorf("unknown topic %q", t.Topic)
	}
	return nil
}

type WordFrequency struct {
	Word      string
	Frequency int
}

type WordCloud struct {
	PropositionID PropositionID
	Words         []WordFrequency
}
