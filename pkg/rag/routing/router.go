package routing

import (
	"context"
	"log"
	"sort"
	"strings"

	"sales-assistant-be/internal/repository/unitofwork"
)

// FolderRoute points retrieval at a folder namespace with a priority
// derived from the query classification.
type FolderRoute struct {
	Namespace  string `json:"namespace"`
	Priority   int    `json:"priority"`
	FolderType string `json:"folder_type"`
	Confidence int    `json:"confidence"`
}

// Folder match weights. Processor folders dominate, pricing folders win
// on rate comparisons.
const (
	folderPointsProcessor = 80
	folderPointsPricing   = 70
	folderPointsSales     = 65
	folderPointsHardware  = 60
	maxFolderRoutes       = 5
)

// Router scores live folder names against a classification and returns
// the best namespaces to search first.
type Router struct {
	classifier *Classifier
	uowFactory unitofwork.RepositoryFactory
	logger     *log.Logger
}

func NewRouter(classifier *Classifier, uowFactory unitofwork.RepositoryFactory, logger *log.Logger) *Router {
	return &Router{
		classifier: classifier,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// SuggestFolders returns up to five folder routes ordered by priority.
// Folder lookup failures degrade to an empty route set.
func (r *Router) SuggestFolders(ctx context.Context, query string) []FolderRoute {
	classification := r.classifier.Classify(query)

	uow := r.uowFactory.NewUnitOfWork(ctx)
	allFolders, err := uow.FolderRepository().FindAll(ctx)
	if err != nil {
		r.logger.Printf("[ERROR] Folder lookup failed, routing without folders: %v", err)
		return []FolderRoute{}
	}

	var routes []FolderRoute
	for _, folder := range allFolders {
		folderNameLower := strings.ToLower(folder.Name)
		priority := 0

		for _, processor := range classification.Processors {
			if strings.Contains(folderNameLower, strings.ReplaceAll(processor, "_", " ")) ||
				strings.Contains(folderNameLower, strings.ReplaceAll(processor, "_", "")) {
				priority += folderPointsProcessor
			}
		}

		for _, hardware := range classification.HardwareTypes {
			if strings.Contains(folderNameLower, hardware) {
				priority += folderPointsHardware
			}
		}

		if classification.Intent == IntentRateComparison &&
			(strings.Contains(folderNameLower, "pricing") || strings.Contains(folderNameLower, "rates")) {
			priority += folderPointsPricing
		}

		if classification.Intent == IntentSalesMaterial &&
			(strings.Contains(folderNameLower, "sales") || strings.Contains(folderNameLower, "marketing")) {
			priority += folderPointsSales
		}

		if priority > 0 {
			confidence := priority
			if confidence > 100 {
				confidence = 100
			}
			routes = append(routes, FolderRoute{
				Namespace:  folder.Name,
				Priority:   priority,
				FolderType: determineFolderType(folder.Name),
				Confidence: confidence,
			})
		}
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Priority > routes[j].Priority
	})

	if len(routes) > maxFolderRoutes {
		routes = routes[:maxFolderRoutes]
	}
	return routes
}

func determineFolderType(folderName string) string {
	nameLower := strings.ToLower(folderName)

	switch {
	case strings.Contains(nameLower, "pricing") || strings.Contains(nameLower, "rates"):
		return "pricing"
	case strings.Contains(nameLower, "hardware") || strings.Contains(nameLower, "pos") || strings.Contains(nameLower, "terminal"):
		return "hardware"
	case strings.Contains(nameLower, "sales") || strings.Contains(nameLower, "marketing"):
		return "sales"
	case strings.Contains(nameLower, "contract") || strings.Contains(nameLower, "agreement"):
		return "contracts"
	}

	for _, entry := range processorKeywords {
		if containsAny(nameLower, entry.keywords) {
			return "processor"
		}
	}

	return "general"
}
