package render

import (
	"html/template"
	"io"

	"github.com/ray1729/film-locations/pkg/locations"
)

const defaultZoom = 7

// HTML renders a standalone Leaflet map with one marker per entry, a red
// marker on the reference point and a circle enclosing the selection.
// Clicking the map shows the coordinates of the clicked point.
type HTML struct {
	grid *gridRefs
	tmpl *template.Template
}

type htmlMarker struct {
	Lat     float64
	Lon     float64
	Title   string
	Detail  string
	GridRef string
}

type htmlCircle struct {
	Radius float64
}

type htmlPage struct {
	Reference locations.Coordinate
	Zoom      int
	Markers   []htmlMarker
	Circle    *htmlCircle
}

func NewHTML() *HTML {
	return &HTML{
		grid: newGridRefs(),
		tmpl: template.Must(template.New("map").Parse(mapTemplate)),
	}
}

func (h *HTML) Render(w io.Writer, ref locations.Coordinate, entries []locations.Record) error {
	page := htmlPage{Reference: ref, Zoom: defaultZoom}
	for _, e := range entries {
		page.Markers = append(page.Markers, htmlMarker{
			Lat:     e.Coordinate.Lat,
			Lon:     e.Coordinate.Lon,
			Title:   e.Title,
			Detail:  e.Address,
			GridRef: h.grid.label(e.Coordinate),
		})
	}
	if radius, ok := CircleRadius(entries); ok {
		page.Circle = &htmlCircle{Radius: radius}
	}
	return h.tmpl.Execute(w, page)
}

const mapTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Filming locations</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Reference.Lat}}, {{.Reference.Lon}}], {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
	maxZoom: 18,
	attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);

function popup(lines) {
	var div = document.createElement("div");
	lines.forEach(function (text, i) {
		if (!text) { return; }
		var p = document.createElement(i === 0 ? "b" : "div");
		p.textContent = text;
		div.appendChild(p);
	});
	return div;
}
{{range .Markers}}
L.marker([{{.Lat}}, {{.Lon}}], {className: "film-location"}).bindPopup(popup([{{.Title}}, {{.Detail}}, {{.GridRef}}])).addTo(map);
{{- end}}

var redIcon = new L.Icon({
	iconUrl: "https://raw.githubusercontent.com/pointhi/leaflet-color-markers/master/img/marker-icon-red.png",
	shadowUrl: "https://unpkg.com/leaflet@1.9.4/dist/images/marker-shadow.png",
	iconSize: [25, 41],
	iconAnchor: [12, 41],
	popupAnchor: [1, -34]
});
L.marker([{{.Reference.Lat}}, {{.Reference.Lon}}], {icon: redIcon}).bindPopup("Given spot").addTo(map);
{{with .Circle}}
L.circle([{{$.Reference.Lat}}, {{$.Reference.Lon}}], {radius: {{.Radius}}, weight: 1, fillColor: "#3186cc"}).addTo(map);
{{- end}}

map.on("click", function (e) {
	L.popup()
		.setLatLng(e.latlng)
		.setContent("Latitude: " + e.latlng.lat.toFixed(4) + "<br>Longitude: " + e.latlng.lng.toFixed(4))
		.openOn(map);
});
</script>
</body>
</html>
`
