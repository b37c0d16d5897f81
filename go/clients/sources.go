package clients

// DataSource is where trade tree input is loaded from
type DataSource string

const (
	// DataSourceLeagueAPI reads trees from the league's HTTP API
	DataSourceLeagueAPI DataSource = "league_api"

	// DataSourcePostgres builds trees directly from the league database
	DataSourcePostgres DataSource = "postgres"
)

// DataSourceConfig describes a data source
type DataSourceConfig struct {
	Source      DataSource `json:"source"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"` // Higher priority wins when no source is configured
}

// GetDataSources returns all known data sources
func GetDataSources() map[DataSource]DataSourceConfig {
	return map[DataSource]DataSourceConfig{
		DataSourceLeagueAPI: {
			Source:      DataSourceLeagueAPI,
			Name:        "League API",
			Description: "Full trade tree endpoint of the league API",
			Priority:    100,
		},
		DataSourcePostgres: {
			Source:      DataSourcePostgres,
			Name:        "League database",
			Description: "Transaction tables read directly",
			Priority:    50,
		},
	}
}

// ValidateDataSource checks if the source is known
func ValidateDataSource(source DataSource) bool {
	_, exists := GetDataSources()[source]
	return exists
}

// DefaultDataSource returns the source with the highest priority
func DefaultDataSource() DataSource {
	var highest DataSource
	var highestPriority int
	for source, config := range GetDataSources() {
		if config.Priority > highestPriority {
			highest = source
			highestPriority = config.Priority
		}
	}
	return highest
}
