package api

import (
	"github.com/JaimeStill/prism/internal/batch"
	"github.com/JaimeStill/prism/internal/catalog"
	"github.com/JaimeStill/prism/internal/images"
	"github.com/JaimeStill/prism/internal/overview"
	"github.com/JaimeStill/prism/internal/predictions"
	"github.com/JaimeStill/prism/internal/verify"
	"github.com/JaimeStill/prism/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalog      catalog.System
	Predictions  predictions.System
	Orchestrator *batch.Orchestrator
	Batch        *batch.Handler
}

// NewDomain creates all domain systems from the API runtime. Verification
// clients are constructed here so empty instructions fail the service at
// startup rather than on the first model call.
func NewDomain(runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()

	catalogSystem := catalog.New(db, runtime.Logger)
	predictionsSystem := predictions.New(db, runtime.Logger, runtime.Pagination)

	invoker := verify.NewAgentInvoker(runtime.Agent)
	policy := runtime.Verify.Retry.Policy()

	classifier, err := verify.NewClassifier(
		invoker,
		runtime.Verify.ClassifierInstructions,
		policy,
		runtime.Logger,
	)
	if err != nil {
		return nil, err
	}

	referee, err := verify.NewReferee(
		invoker,
		runtime.Verify.RefereeInstructions,
		policy,
		runtime.Logger,
	)
	if err != nil {
		return nil, err
	}

	var source images.Source
	if runtime.Verify.ImageRoot != "" {
		source = images.NewDirSource(runtime.Verify.ImageRoot)
	} else {
		source = images.NewBlobSource(runtime.Storage)
	}

	rt := &workflow.Runtime{
		Overviews:  overview.NewAssembler(catalogSystem, runtime.Logger),
		Images:     images.NewResolver(catalogSystem, source, runtime.Logger),
		Classifier: classifier,
		Referee:    referee,
		Logger:     runtime.Logger.With("workflow", "verify"),
	}

	orchestrator := batch.NewOrchestrator(
		workflow.NewRunner(rt),
		predictionsSystem,
		catalogSystem,
		runtime.Verify.ChunkSize,
		runtime.Logger,
	)

	return &Domain{
		Catalog:      catalogSystem,
		Predictions:  predictionsSystem,
		Orchestrator: orchestrator,
		Batch:        batch.NewHandler(orchestrator, runtime.Logger),
	}, nil
}
