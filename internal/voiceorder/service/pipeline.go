package service

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

// ErrNoItemsRecognized is returned when an utterance names no known product.
// It is a normal outcome that the user can retry, not a failure.
var ErrNoItemsRecognized = errors.New("no items recognized")

type Result struct {
	Transcript string
	Simulated  bool
	Items      []domain.LineItem
	Total      float64
}

// Pipeline turns an utterance into priced line items:
// extract mentions, resolve them against the catalog, price each line.
type Pipeline struct {
	extractor *Extractor
	resolver  *Resolver
	pricer    *Pricer
	simulator *Simulator
	newID     func() string
	logger    *zap.Logger
}

func NewPipeline(c *catalog.Catalog, simulator *Simulator, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(c),
		resolver:  NewResolver(c),
		pricer:    NewPricer(),
		simulator: simulator,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// Process runs the pipeline. A nil utterance means no speech engine was
// available and the order is simulated from the catalog. The only error is
// ErrNoItemsRecognized, returned together with a result holding the transcript.
func (p *Pipeline) Process(utterance *string) (*Result, error) {
	result := &Result{}

	var mentions []domain.Mention
	if utterance == nil {
		result.Simulated = true
		mentions = p.simulator.Mentions()
	} else {
		result.Transcript = *utterance
		mentions = p.extractor.ExtractAll(*utterance)
	}

	titler := cases.Title(language.English)
	for _, m := range mentions {
		entry, ok := p.resolver.Resolve(m.RawName)
		if !ok {
			p.logger.Debug("dropping unresolved mention", zap.String("name", m.RawName))
			continue
		}

		quantity := m.RawQuantity
		if quantity == "" {
			quantity = DefaultQuantity(entry)
		}
		amount := p.pricer.Price(entry, quantity)

		result.Items = append(result.Items, domain.LineItem{
			ID:          p.newID(),
			ProductID:   entry.ID,
			DisplayName: titler.String(entry.Name),
			Quantity:    quantity,
			Price:       p.pricer.FormatPrice(amount),
			Amount:      amount,
		})
	}

	p.logger.Debug("utterance processed",
		zap.Bool("simulated", result.Simulated),
		zap.Int("mentionCount", len(mentions)),
		zap.Int("itemCount", len(result.Items)),
	)

	if len(result.Items) == 0 {
		return result, ErrNoItemsRecognized
	}

	result.Total = p.pricer.Total(result.Items)
	return result, nil
}
