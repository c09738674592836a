package scoring

import "github.com/cloudwisedk/docuprocess/internal/core/domain"

// Weights combine the four sub-scores into the overall score. They are
// policy constants: configurable, but the defaults must stay as shipped
// for score compatibility across reprocessing runs.
type Weights struct {
	Customer       float64
	Policy         float64
	Reconciliation float64
	Quality        float64
}

func DefaultWeights() Weights {
	return Weights{Customer: 0.3, Policy: 0.3, Reconciliation: 0.2, Quality: 0.2}
}

// ReviewFloors are the thresholds below which a document always requires
// manual review, regardless of the routing decision.
type ReviewFloors struct {
	Overall  float64
	Customer float64
	Policy   float64
	Quality  float64
}

func DefaultFloors() ReviewFloors {
	return ReviewFloors{Overall: 0.6, Customer: 0.3, Policy: 0.3, Quality: 0.4}
}

// Engine runs the four sub-scorers over one corpus snapshot and combines
// them.
type Engine struct {
	weights Weights
	floors  ReviewFloors
}

func NewEngine(weights Weights, floors ReviewFloors) *Engine {
	return &Engine{weights: weights, floors: floors}
}

// Evaluate scores normalized text against the corpus.
func (e *Engine) Evaluate(text string, corpus *domain.ReferenceCorpus) (domain.ScoreSet, bool) {
	entities := ExtractEntities(text)
	return e.Combine(
		CustomerMatch(text, corpus.Customers),
		PolicyMatch(text, corpus.Policies),
		InvoiceReconciliation(text, entities, corpus.Invoices, corpus.Transactions),
		DataQuality(text, entities),
	)
}

// Combine folds the four sub-scores into the overall score and the review
// flag. The flag is a pure function of the scores and the floors; it is
// never set independently. The overall boundary is strict: a score exactly
// at the floor does not require review.
func (e *Engine) Combine(customer, policy, reconciliation, quality float64) (domain.ScoreSet, bool) {
	scores := domain.ScoreSet{
		CustomerMatch:         customer,
		PolicyMatch:           policy,
		InvoiceReconciliation: reconciliation,
		DataQuality:           quality,
	}
	scores.Overall = customer*e.weights.Customer +
		policy*e.weights.Policy +
		reconciliation*e.weights.Reconciliation +
		quality*e.weights.Quality

	review := scores.Overall < e.floors.Overall ||
		customer < e.floors.Customer ||
		policy < e.floors.Policy ||
		quality < e.floors.Quality

	return scores, review
}
