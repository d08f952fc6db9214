// Project Structure Overview
/*
repricer-backend/
├── cmd/
│   └── server/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── domain/
│   │   ├── money.go
│   │   ├── identifiers.go
│   │   ├── enums.go
│   │   ├── market_data.go
│   │   ├── time_range.go
│   │   ├── clock.go
│   │   ├── product.go
│   │   ├── variant.go
│   │   ├── listing.go
│   │   ├── sale.go
│   │   ├── aggregates.go
│   │   ├── factories.go
│   │   └── errors.go
│   ├── models/
│   │   ├── product.go
│   │   ├── variant.go
│   │   ├── listing.go
│   │   ├── historical_price.go
│   │   ├── batch_operation.go
│   │   └── common.go
│   ├── stockx/
│   │   ├── auth.go
│   │   ├── client.go
│   │   └── mapper.go
│   ├── services/
│   │   ├── product_service.go
│   │   ├── market_data_service.go
│   │   ├── pricing_service.go
│   │   ├── listing_service.go
│   │   ├── data_collector_service.go
│   │   └── convert.go
│   ├── handlers/
│   │   ├── product.go
│   │   ├── market_data.go
│   │   ├── pricing.go
│   │   ├── listing.go
│   │   ├── collector.go
│   │   └── errors.go
│   ├── middleware/
│   │   ├── cors.go
│   │   ├── rate_limit.go
│   │   └── logging.go
│   ├── database/
│   │   └── connection.go
│   ├── utils/
│   │   ├── validator.go
│   │   ├── pagination.go
│   │   └── response.go
│   └── router/
│       └── router.go
├── go.mod
└── README.md
*/

package repricerbackend

// This file shows the project structure and main entry point
// The actual implementation will be in separate files as shown in the structure above
