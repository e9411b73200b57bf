package geodata

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"

	"rooftop-solar/internal/geo"
	"rooftop-solar/internal/model"
)

// ResolverConfig carries the policy constants of the roof derivation. The
// values have no stated derivation beyond the original system; they are kept
// configurable rather than hard-coded.
type ResolverConfig struct {
	BuildingSearchRadiusM int     // radius around the point for the target building
	ObstructionRadiusM    int     // radius for nearby obstructions
	UsableRoofFraction    float64 // share of roof area usable for panels
	MainSectionShare      float64 // share of usable area on the main section
}

// DefaultResolverConfig mirrors the original system's constants.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		BuildingSearchRadiusM: 10,
		ObstructionRadiusM:    100,
		UsableRoofFraction:    0.85,
		MainSectionShare:      0.8,
	}
}

// Resolver turns coordinates into building footprints and roof analyses.
type Resolver struct {
	Client *Client
	Config ResolverConfig
}

// NewResolver creates a Resolver with the given Overpass client.
func NewResolver(client *Client, cfg ResolverConfig) *Resolver {
	return &Resolver{Client: client, Config: cfg}
}

// ResolveBuilding looks up the building footprint at the coordinates. When
// the query succeeds but no usable polygon is present, ErrNotFound is
// returned and the caller decides whether to retry or substitute
// SyntheticFootprint.
func (r *Resolver) ResolveBuilding(ctx context.Context, lat, lon float64) (*model.BuildingFootprint, error) {
	resp, err := r.Client.Query(ctx, buildingQuery(lat, lon, r.Config.BuildingSearchRadiusM))
	if err != nil {
		return nil, err
	}
	if len(resp.Elements) == 0 {
		return nil, ErrNotFound
	}

	target := geo.Point{Lat: lat, Lon: lon}
	var closest *OverpassElement
	minDist := math.Inf(1)
	for i := range resp.Elements {
		el := &resp.Elements[i]
		if el.Type != "way" || len(el.Geometry) < 3 {
			continue
		}
		d := geo.DistanceKm(target, geo.Centroid(el.Geometry))
		if d < minDist {
			minDist = d
			closest = el
		}
	}
	if closest == nil {
		return nil, ErrNotFound
	}

	return footprintFromElement(closest), nil
}

func footprintFromElement(el *OverpassElement) *model.BuildingFootprint {
	tags := el.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	height, levels := model.HeightFromTags(tags)
	return &model.BuildingFootprint{
		ID:      strconv.FormatInt(el.ID, 10),
		Ring:    el.Geometry,
		Tags:    tags,
		AreaM2:  geo.RingAreaM2(el.Geometry),
		Center:  geo.Centroid(el.Geometry),
		HeightM: height,
		Levels:  levels,
	}
}

// SyntheticFootprint builds a square fallback footprint centered on the
// point: side 0.0001 degrees (~11 m, ~120 m²), 8 m height. It is flagged
// Estimated so downstream consumers can always tell it apart from a geocoded
// building.
func SyntheticFootprint(lat, lon float64) *model.BuildingFootprint {
	const half = 0.00005
	ring := []geo.Point{
		{Lat: lat + half, Lon: lon - half},
		{Lat: lat + half, Lon: lon + half},
		{Lat: lat - half, Lon: lon + half},
		{Lat: lat - half, Lon: lon - half},
	}
	return &model.BuildingFootprint{
		ID:        fmt.Sprintf("synthetic-%.4f-%.4f", lat, lon),
		Ring:      ring,
		Tags:      map[string]string{"building": "residential"},
		AreaM2:    geo.RingAreaM2(ring),
		Center:    geo.Point{Lat: lat, Lon: lon},
		HeightM:   8,
		Levels:    2,
		Estimated: true,
	}
}

// NearbyObstructions fetches buildings, trees and barriers around a point.
// Upstream failure degrades to an empty list; shading then reflects the roof
// geometry only.
func (r *Resolver) NearbyObstructions(ctx context.Context, lat, lon float64) []model.BuildingFootprint {
	resp, err := r.Client.Query(ctx, obstructionQuery(lat, lon, r.Config.ObstructionRadiusM))
	if err != nil {
		log.Printf("[Resolver] Obstruction query failed, continuing without obstructions: %v", err)
		return nil
	}

	target := geo.Point{Lat: lat, Lon: lon}
	var out []model.BuildingFootprint
	for i := range resp.Elements {
		el := &resp.Elements[i]
		fp := obstructionFootprint(el)
		if fp == nil {
			continue
		}
		if geo.DistanceMeters(target, fp.Center) > float64(r.Config.ObstructionRadiusM) {
			continue
		}
		out = append(out, *fp)
	}
	return out
}

func obstructionFootprint(el *OverpassElement) *model.BuildingFootprint {
	switch {
	case el.Type == "node":
		if el.Tags["natural"] != "tree" {
			return nil
		}
		tags := el.Tags
		height, levels := model.HeightFromTags(tags)
		return &model.BuildingFootprint{
			ID:      strconv.FormatInt(el.ID, 10),
			Tags:    tags,
			Center:  geo.Point{Lat: el.Lat, Lon: el.Lon},
			HeightM: height,
			Levels:  levels,
		}
	case len(el.Geometry) > 0:
		return footprintFromElement(el)
	default:
		return nil
	}
}

// AnalyzeRoof derives the roof view of a footprint: usable area, principal
// orientation, default inclination, and a fixed main/secondary dual-pitch
// split. This deliberately models two opposite sections rather than true
// roof facets.
func (r *Resolver) AnalyzeRoof(fp *model.BuildingFootprint) *model.RoofAnalysis {
	roofArea := fp.AreaM2
	usable := roofArea * r.Config.UsableRoofFraction
	orientation := geo.LongestEdgeBearingDeg(fp.Ring)
	inclination := roofInclinationDeg(fp.Tags)

	mainShare := r.Config.MainSectionShare
	sections := []model.RoofSection{
		{
			ID:             "main",
			AreaM2:         usable * mainShare,
			OrientationDeg: orientation,
			InclinationDeg: inclination,
			ShadingFactor:  0.9, // placeholder until the shading stage runs
		},
		{
			ID:             "secondary",
			AreaM2:         usable * (1 - mainShare),
			OrientationDeg: math.Mod(orientation+180, 360),
			InclinationDeg: inclination,
			ShadingFactor:  0.85,
		},
	}

	return &model.RoofAnalysis{
		Building:              *fp,
		RoofAreaM2:            roofArea,
		UsableAreaM2:          usable,
		OrientationDeg:        orientation,
		AverageInclinationDeg: inclination,
		Sections:              sections,
	}
}

// roofInclinationDeg defaults the inclination from roof:shape, then building
// type.
func roofInclinationDeg(tags map[string]string) float64 {
	switch tags["roof:shape"] {
	case "flat":
		return 5
	case "gabled":
		return 35
	case "hipped":
		return 30
	}
	switch tags["building"] {
	case "house":
		return 35
	case "apartments":
		return 25
	}
	return 30
}
