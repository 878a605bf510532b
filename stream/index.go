package stream

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>wavetrack</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; }
canvas { display: block; margin: 1em 0; }
</style>
</head>
<body>
<div id="status">connecting</div>
<canvas id="grid"></canvas>
<script>
const cell = 24;
const canvas = document.getElementById("grid");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
const arrows = {"^": "↑", "v": "↓", "<": "←", ">": "→"};

function draw(f) {
  canvas.width = f.width * cell;
  canvas.height = f.height * cell;
  ctx.font = (cell - 6) + "px monospace";
  ctx.textAlign = "center";
  ctx.textBaseline = "middle";
  for (let y = 0; y < f.height; y++) {
    for (let x = 0; x < f.width; x++) {
      const n = f.domains[y][x];
      const g = f.tiles[y][x];
      const shade = 20 + n * 8;
      ctx.fillStyle = "rgb(" + shade + "," + shade + "," + shade + ")";
      ctx.fillRect(x * cell, y * cell, cell - 1, cell - 1);
      const cx = x * cell + cell / 2, cy = y * cell + cell / 2;
      if (arrows[g]) {
        ctx.fillStyle = (f.last.X === x && f.last.Y === y) ? "#f55" : "#e6c850";
        ctx.fillText(arrows[g], cx, cy);
      } else if (n > 1) {
        ctx.fillStyle = "#666";
        ctx.fillText(String(n), cx, cy);
      }
    }
  }
  status.textContent = f.state + " | " + f.outcome +
    " | runs " + f.stats.CompletedRuns + " | contradictions " + f.stats.Contradictions;
}

const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (e) => draw(JSON.parse(e.data));
ws.onclose = () => { status.textContent = "disconnected"; };
</script>
</body>
</html>
`
