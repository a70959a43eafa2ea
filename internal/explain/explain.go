// Package explain turns a canonical record into an audience-tailored
// natural-language explanation. It selects a prompt template and generation
// parameters by role, renders the record into the template, and calls the
// Gemini API — or serves a pre-authored flagship explanation when no
// credential is available.
package explain

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"google.golang.org/genai"

	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/aviaryworks/fieldguide/pkg/logging"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// Generator abstracts the text-generation call for testability.
type Generator interface {
	Generate(ctx context.Context, prompt string, params GenParams) (string, error)
}

// GeneratorFactory builds a Generator for a caller-supplied credential.
type GeneratorFactory func(ctx context.Context, credential string) (Generator, error)

// Explainer produces explanations for canonical records.
type Explainer struct {
	newGenerator GeneratorFactory
	model        string
}

// Option configures an Explainer.
type Option func(*Explainer)

// WithGeneratorFactory substitutes the generator construction (test seam).
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(e *Explainer) {
		e.newGenerator = f
	}
}

// WithModel overrides the generation model.
func WithModel(model string) Option {
	return func(e *Explainer) {
		e.model = model
	}
}

// New creates an Explainer backed by the Gemini API.
func New(opts ...Option) *Explainer {
	e := &Explainer{model: constants.DefaultGenerationModel}
	e.newGenerator = func(ctx context.Context, credential string) (Generator, error) {
		return newGeminiGenerator(ctx, credential, e.model)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explain generates the explanation for the record and role.
//
// Without a credential, a flagship record on the exact-match allow-list is
// answered from the pre-authored texts; anything else fails Unauthorized so
// the caller can tell the user to add a credential. With a credential, every
// query goes through generation — the canned path never shadows a live call.
func (e *Explainer) Explain(ctx context.Context, rec *record.Canonical, role Role, credential string) (string, error) {
	if credential == "" {
		if canned := lookupCanned(rec, role); canned != "" {
			logging.FromContext(ctx).Debug().
				Str("role", role.String()).
				Msg("serving pre-authored explanation")
			return canned, nil
		}
		return "", errors.NewGenerationError(errors.GenerationUnauthorized,
			"no API credential supplied", errors.ErrAPIKeyRequired)
	}

	gen, err := e.newGenerator(ctx, credential)
	if err != nil {
		return "", classifyGenerationError(err)
	}

	prompt := RenderPrompt(role, rec)

	genCtx, cancel := context.WithTimeout(ctx, constants.GenerationTimeout)
	defer cancel()

	text, err := gen.Generate(genCtx, prompt, role.Params())
	if err != nil {
		return "", classifyGenerationError(err)
	}
	if text == "" {
		return "", errors.NewGenerationError(errors.GenerationProviderFault,
			"model returned an empty completion", nil)
	}
	return text, nil
}

// lookupCanned checks the flagship allow-list against the record's common
// and scientific names. Exact identity match only.
func lookupCanned(rec *record.Canonical, role Role) string {
	for _, name := range []string{rec.CommonName, rec.ScientificName} {
		if name == "" || name == record.Unknown {
			continue
		}
		if text := cannedExplanation(name, role); text != "" {
			return text
		}
	}
	return ""
}

// classifyGenerationError maps provider faults onto the closed
// GenerationError kinds so the caller can render a specific message.
func classifyGenerationError(err error) *errors.GenerationError {
	var genErr *errors.GenerationError
	if stderrors.As(err, &genErr) {
		return genErr
	}

	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewGenerationError(errors.GenerationUnauthorized, apiErr.Message, err)
		case http.StatusTooManyRequests:
			return errors.NewGenerationError(errors.GenerationRateLimited, apiErr.Message, err)
		default:
			return errors.NewGenerationError(errors.GenerationProviderFault, apiErr.Message, err)
		}
	}

	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) ||
		(stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewGenerationError(errors.GenerationTimeout, "generation call timed out", err)
	}

	return errors.NewGenerationError(errors.GenerationProviderFault, err.Error(), err)
}

// geminiGenerator is the production Generator backed by the genai SDK.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// newGeminiGenerator creates a Gemini-backed generator using an API-key
// credential.
func newGeminiGenerator(ctx context.Context, credential, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiGenerator{client: client, model: model}, nil
}

// Generate implements Generator with a single-user-message chat request.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string, params GenParams) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		[]*genai.Content{
			{Parts: []*genai.Part{{Text: prompt}}, Role: "user"},
		},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(params.Temperature),
			MaxOutputTokens: params.MaxOutputTokens,
		},
	)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
