// Package data embeds the default reference tables.
package data

import _ "embed"

//go:embed airports.json
var AirportsData []byte

//go:embed airlines.json
var AirlinesData []byte

//go:embed routes.json
var RoutesData []byte
