package llmsource

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/search"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/platform/factextract"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

// Outlook implements snapshot.OutlookSource. Both summaries come from one
// prompt; when the answer is prose rather than JSON the fact extractor
// recovers what it can.
type Outlook struct {
	searcher  search.Searcher
	extractor *factextract.TextFactExtractor
	now       func() time.Time
	logger    *logging.Logger
}

func NewOutlook(searcher search.Searcher, extractor *factextract.TextFactExtractor, now func() time.Time, logger *logging.Logger) *Outlook {
	if extractor == nil {
		extractor = factextract.NewTextFactExtractor(nil)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Outlook{searcher: searcher, extractor: extractor, now: now, logger: logger.Named("llm_outlook")}
}

func (o *Outlook) Outlook(ctx context.Context, competitor, series string) (snapshot.Individual, snapshot.Series, error) {
	individual := snapshot.Individual{Competitor: competitor}
	motorsport := snapshot.Series{Series: series}
	if o.searcher == nil {
		return individual, motorsport, fmt.Errorf("%w: no search provider for outlook", usecase.ErrDependencyUnavailable)
	}

	text, err := o.searcher.Search(ctx, outlookPrompt(o.now(), competitor, series))
	if err != nil {
		return individual, motorsport, fmt.Errorf("outlook search: %w", err)
	}

	payload, ok := factextract.JSONObject(text)
	if !ok {
		facts := o.extractor.Extract(text)
		o.logger.WarnContext(ctx, "outlook answer is not json, using extracted facts",
			"tournament", facts.Tournament,
			"grand_prix", facts.GrandPrix,
		)
		individual.Next = snapshot.Event{Name: facts.Tournament, Date: facts.Date}
		motorsport.Name = facts.GrandPrix
		return individual, motorsport, nil
	}

	tennis := factextract.Object(payload, "tennis", "individual")
	individual.Recent, individual.Next = parseIndividual(tennis)
	individual.Recent.Status = factextract.String(tennis, "status")
	individual.Next.Status = individual.Recent.Status

	f1 := factextract.Object(payload, "motorsport", "f1", "series")
	motorsport.Status = factextract.String(f1, "status")
	motorsport.Name = factextract.String(f1, "name", "grand_prix", "race")
	motorsport.Venue = factextract.String(f1, "circuit", "location", "venue")
	motorsport.Date = factextract.String(f1, "date", "time")
	if motorsport.Name == "" {
		motorsport.Name = factextract.GrandPrix(text)
	}
	return individual, motorsport, nil
}

// parseIndividual accepts either nested recent/next objects or the flat
// status/info/detail/time shape, which describes the next event.
func parseIndividual(m map[string]any) (recent, next snapshot.Event) {
	if m == nil {
		return recent, next
	}
	if obj := factextract.Object(m, "recent", "last"); obj != nil {
		recent = event(obj)
	}
	if obj := factextract.Object(m, "next", "upcoming"); obj != nil {
		next = event(obj)
	} else {
		next = event(m)
	}
	return recent, next
}

func event(m map[string]any) snapshot.Event {
	return snapshot.Event{
		Name:   factextract.String(m, "info", "tournament", "name"),
		Detail: factextract.String(m, "detail", "round", "venue"),
		Result: factextract.String(m, "result", "score"),
		Date:   factextract.String(m, "time", "date"),
	}
}
