package mapview

// Self-contained Leaflet page. Layer operations arrive over the
// websocket; the page holds no routing logic of its own.
const mapPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>EV Route Navigator</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        html, body, #map { height: 100%; }
        .marker-popup h4 { margin-bottom: 0.5rem; font-size: 1.1rem; }
        .marker-popup p { margin: 0.25rem 0; color: #4b5563; font-size: 0.9rem; }
        #status {
            position: absolute; top: 10px; right: 10px; z-index: 1000;
            padding: 4px 10px; border-radius: 6px; font: 13px sans-serif;
            background: rgba(255,255,255,0.9); color: #374151;
        }
        #status.offline { color: #dc2626; }
    </style>
</head>
<body>
    <div id="map"></div>
    <div id="status">connecting…</div>

    <script>
        const map = L.map('map').setView([17.7, 83.3], 6);
        L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
            attribution: 'Map data © OpenStreetMap contributors'
        }).addTo(map);

        const layers = new Map();

        const markerGlyphs = {
            start: '🟢',
            end: '🏁',
            required_stop: '🔌',
            nearby_station: '⚡'
        };

        function markerIcon(kind) {
            return L.divIcon({
                className: 'route-marker ' + kind,
                html: '<div style="font-size:24px">' + (markerGlyphs[kind] || '📍') + '</div>',
                iconSize: [28, 28],
                iconAnchor: [14, 28]
            });
        }

        function apply(op) {
            switch (op.op) {
            case 'add_polyline': {
                const latlngs = op.line.coordinates.map(c => [c[1], c[0]]);
                const line = L.polyline(latlngs, {
                    color: op.color,
                    weight: op.weight,
                    opacity: op.opacity,
                    dashArray: op.dashed ? '10, 10' : null
                }).addTo(map);
                layers.set(op.id, line);
                break;
            }
            case 'add_marker': {
                const marker = L.marker([op.lat, op.lon], { icon: markerIcon(op.kind) }).addTo(map);
                if (op.popup) marker.bindPopup(op.popup);
                layers.set(op.id, marker);
                break;
            }
            case 'set_opacity': {
                const line = layers.get(op.id);
                if (line && line.setStyle) line.setStyle({ opacity: op.opacity });
                break;
            }
            case 'remove': {
                const layer = layers.get(op.id);
                if (layer) {
                    map.removeLayer(layer);
                    layers.delete(op.id);
                }
                break;
            }
            case 'fit_bounds':
                map.fitBounds(op.bounds);
                break;
            case 'set_fullscreen':
                if (op.on && !document.fullscreenElement) {
                    document.documentElement.requestFullscreen().catch(() => {});
                } else if (!op.on && document.fullscreenElement) {
                    document.exitFullscreen().catch(() => {});
                }
                break;
            }
        }

        function connect() {
            const status = document.getElementById('status');
            const ws = new WebSocket('ws://' + location.host + '/ws');
            ws.onopen = () => { status.textContent = 'live'; status.className = ''; };
            ws.onmessage = e => apply(JSON.parse(e.data));
            ws.onclose = () => {
                status.textContent = 'reconnecting…';
                status.className = 'offline';
                layers.forEach(l => map.removeLayer(l));
                layers.clear();
                setTimeout(connect, 1000);
            };
        }
        connect();
    </script>
</body>
</html>`
