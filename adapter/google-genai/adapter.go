package googlegenai

import (
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGenerativeModel = "gemini-2.5-flash"

// Adapter is an Analyzer backed by a Gemini generative model.
type Adapter struct {
	client          *genai.Client
	generativeModel string
	logger          *zap.Logger
}

type Option func(*Adapter)

func WithGenerativeModel(model string) Option {
	return func(a *Adapter) {
		if model != "" {
			a.generativeModel = model
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(client *genai.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:          client,
		generativeModel: defaultGenerativeModel,
		logger:          zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"generative model", a.generativeModel,
	).Info("init google genai adapter")

	return a
}
