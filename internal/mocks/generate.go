package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/standings --output domain/standings --outpkg standingsmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/basketball --output domain/basketball --outpkg basketballmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Searcher --dir ../domain/search --output domain/search --outpkg searchmock --filename searcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/snapshot --output domain/snapshot --outpkg snapshotmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SummarySource --dir ../domain/basketball --output domain/basketball --outpkg basketballmock --filename summary_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OutlookSource --dir ../domain/snapshot --output domain/snapshot --outpkg snapshotmock --filename outlook_source_mock.go
