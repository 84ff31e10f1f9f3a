package mocks

//go:generate mockery --name EntryCollector --srcpkg github.com/aevon-lab/diarystats/internal/stats --output ./stats --outpkg statsmocks --with-expecter
