package main

import "github.com/umputun/postdigest/pkg/repository"

// analysisStore feeds the analysis processor, pending items come from the item repository
// and analyses are saved by the analysis repository
type analysisStore struct {
	*repository.ItemRepository
	*repository.AnalysisRepository
}
