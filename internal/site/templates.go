package site

// shellTemplate is the Go html/template for the showcase shell page. The
// <title> element doubles as the marker the loader uses to detect masked
// 404s, so it must stay a plain title.
const shellTemplate = `<!DOCTYPE html>
<html lang="en"{{if .Dark}} class="dark"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
  <link rel="stylesheet" href="/assets/style.css">
</head>
<body>
  <header class="top-bar">
    <div class="brand">
      <h1>{{.Title}}</h1>
      <p class="stats"><span id="component-count">{{.Components}}</span> components in <span id="category-count">{{.Categories}}</span> categories</p>
    </div>
    <button class="icon-btn" id="theme-toggle" aria-label="Toggle theme">
      <i class="fa fa-moon moon-icon"></i><i class="fa fa-sun sun-icon"></i>
    </button>
  </header>

  <nav class="category-tabs" id="category-tabs"></nav>

  <main class="viewer" id="viewer">
    <div class="viewer-header">
      <h2 id="component-title"></h2>
      <div class="controls">
        <button class="icon-btn" id="prev-btn" aria-label="Previous"><i class="fa fa-chevron-left"></i></button>
        <button class="text-btn" id="play-pause-btn">Play</button>
        <button class="icon-btn" id="next-btn" aria-label="Next"><i class="fa fa-chevron-right"></i></button>
        <button class="text-btn" id="expand-btn">Expand</button>
        <button class="icon-btn" id="fullscreen-btn" aria-label="Open in new tab"><i class="fa fa-up-right-from-square"></i></button>
      </div>
    </div>
    <div class="slide-container" id="dynamicContentContainer">
      <div class="spinner" id="loading-indicator" hidden></div>
      <div class="placeholder" id="placeholder" hidden>
        <h3 id="placeholder-title"></h3>
        <p id="placeholder-message"></p>
        <code id="placeholder-path"></code>
        <button class="text-btn" id="retry-btn" hidden>Retry</button>
      </div>
    </div>
    <div class="bullets" id="bullets"></div>
  </main>

  <section class="panels">
    <div class="panel-triggers">
      {{range .Panels}}<button class="text-btn panel-trigger" data-panel="{{.ID}}" data-source="{{.Source}}"><i class="fa {{.ClosedIcon}}"></i> <span>{{.ClosedLabel}}</span></button>
      {{end}}
    </div>
    {{range .Panels}}<div class="panel" id="panel-{{.ID}}" hidden></div>
    {{end}}
  </section>

  <button class="icon-btn scroll-top" id="scroll-top-btn" title="Back to top" hidden>&uarr;</button>

  <script src="/assets/script.js"></script>
</body>
</html>`

// cssContent is the stylesheet of the shell page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
}

html.dark {
  --bg: #1a1b1e;
  --bg-secondary: #25262b;
  --text: #c1c2c5;
  --text-muted: #909296;
  --border: #373a40;
  --accent: #4dabf7;
  --shadow: 0 1px 3px rgba(0,0,0,0.4);
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
}

.top-bar {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 16px 24px;
  border-bottom: 1px solid var(--border);
}

.top-bar h1 { margin: 0; font-size: 1.4rem; }
.stats { margin: 4px 0 0; color: var(--text-muted); font-size: 0.85rem; }

.icon-btn, .text-btn {
  background: var(--bg-secondary);
  border: 1px solid var(--border);
  color: var(--text);
  border-radius: 6px;
  padding: 6px 12px;
  cursor: pointer;
}
.icon-btn:disabled, .text-btn:disabled { opacity: 0.4; cursor: default; }

html.dark .moon-icon, html:not(.dark) .sun-icon { display: none; }

.category-tabs {
  display: flex;
  gap: 8px;
  padding: 12px 24px;
  overflow-x: auto;
}
.category-tabs button.active { background: var(--accent); color: #fff; border-color: var(--accent); }

.viewer { padding: 0 24px; }
.viewer-header { display: flex; align-items: center; justify-content: space-between; }
.controls { display: flex; gap: 6px; }

.slide-container {
  position: relative;
  height: 560px;
  border: 1px solid var(--border);
  border-radius: 8px;
  overflow: hidden;
  box-shadow: var(--shadow);
  transition: height 0.2s ease;
}
.slide-container.expanded { height: calc(100vh - 120px); }
.slide-container iframe { width: 100%; height: 100%; border: 0; background: #fff; }

.spinner {
  position: absolute;
  top: 50%;
  left: 50%;
  width: 36px;
  height: 36px;
  margin: -18px 0 0 -18px;
  border: 3px solid var(--border);
  border-top-color: var(--accent);
  border-radius: 50%;
  animation: spin 0.8s linear infinite;
}
@keyframes spin { to { transform: rotate(360deg); } }

.placeholder { padding: 48px; text-align: center; color: var(--text-muted); }
.placeholder code { display: block; margin: 12px 0; }

.bullets { display: flex; justify-content: center; gap: 6px; padding: 12px; }
.bullets button {
  width: 10px;
  height: 10px;
  padding: 0;
  border-radius: 50%;
  border: 0;
  background: var(--border);
  cursor: pointer;
}
.bullets button.active { background: var(--accent); }

.panels { padding: 12px 24px 48px; }
.panel-triggers { display: flex; gap: 8px; }
.panel { margin-top: 12px; padding: 16px; border: 1px solid var(--border); border-radius: 8px; }
.panel-error { color: #e03131; }

.scroll-top {
  position: fixed;
  right: 24px;
  bottom: 24px;
  border-radius: 50%;
  background: var(--bg-secondary);
}`

// jsContent drives the shell: it mirrors the server-side session view into
// the DOM and forwards user input as session messages.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var ws = null;
  var view = null;
  var frameRequest = null;
  var $ = function(id) { return document.getElementById(id); };

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(msg));
    }
  }

  function prefersDark() {
    return !!(window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches);
  }

  function connect(id) {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    ws = new WebSocket(proto + "//" + location.host + "/ws/session/" + id);
    ws.onmessage = function(e) {
      var msg = JSON.parse(e.data);
      if (msg.type === "view") {
        render(msg.view);
      } else if (msg.type === "error") {
        console.warn("showcase:", msg.error);
      }
    };
    ws.onclose = function() { ws = null; };
  }

  function setClasses(root, classes) {
    var dark = classes.indexOf("dark") !== -1;
    if (root.classList.contains("dark") !== dark) {
      root.classList.toggle("dark", dark);
    }
  }

  function themeFrame(iframe, classes) {
    try {
      setClasses(iframe.contentDocument.documentElement, classes);
    } catch (e) {
      // Cross-origin frames cannot be themed.
    }
  }

  function renderTabs(v) {
    var tabs = $("category-tabs");
    tabs.innerHTML = "";
    v.tabs.forEach(function(tab) {
      var b = document.createElement("button");
      b.className = "text-btn" + (tab.active ? " active" : "");
      b.textContent = tab.name;
      b.onclick = function() { send({type: "select_category", category: tab.name}); };
      tabs.appendChild(b);
    });
  }

  function renderBullets(v) {
    var strip = $("bullets");
    strip.innerHTML = "";
    (v.affordances.bullets || []).forEach(function(bullet) {
      var b = document.createElement("button");
      b.className = bullet.active ? "active" : "";
      b.setAttribute("aria-label", "Go to " + (bullet.index + 1));
      b.onclick = function() { send({type: "go_to", index: bullet.index}); };
      strip.appendChild(b);
    });
  }

  function renderFrame(v) {
    var container = $("dynamicContentContainer");
    var existing = container.querySelector("iframe");
    if (!v.frame) {
      if (existing) { existing.remove(); }
      frameRequest = null;
      return;
    }
    if (existing && frameRequest === v.frame.request_id) {
      themeFrame(existing, v.frame.classes);
      return;
    }
    if (existing) { existing.remove(); }
    frameRequest = v.frame.request_id;
    var iframe = document.createElement("iframe");
    iframe.id = v.frame.id;
    iframe.src = v.frame.src;
    iframe.hidden = true;
    iframe.onload = function() {
      iframe.hidden = false;
      themeFrame(iframe, v.frame.classes);
      send({type: "frame_loaded", request_id: v.frame.request_id});
    };
    container.appendChild(iframe);
  }

  function renderPlaceholder(v) {
    var p = v.placeholder;
    $("placeholder").hidden = !p;
    if (!p) { return; }
    $("placeholder-title").textContent = p.title;
    $("placeholder-message").textContent = p.message;
    $("placeholder-path").textContent = p.path || "";
    $("retry-btn").hidden = !p.retry;
  }

  function renderPanels(v) {
    Object.keys(v.panels || {}).forEach(function(id) {
      var entry = v.panels[id];
      var el = $("panel-" + id);
      if (!el) { return; }
      if (entry.loaded && el.dataset.loaded !== "true") {
        el.innerHTML = entry.html;
        el.dataset.loaded = "true";
      }
      el.hidden = !entry.visible;
    });
    (v.triggers || []).forEach(function(t) {
      var b = document.querySelector('.panel-trigger[data-panel="' + t.panel_id + '"]');
      if (!b) { return; }
      b.querySelector("span").textContent = t.label;
      b.querySelector("i").className = "fa " + t.icon;
      b.classList.toggle("active", t.active);
    });
  }

  function render(v) {
    if (view && v.revision <= view.revision) { return; }
    view = v;

    setClasses(html, v.root_classes);
    renderTabs(v);
    $("component-title").textContent = v.title || "";
    $("prev-btn").disabled = !v.affordances.prev_enabled;
    $("next-btn").disabled = !v.affordances.next_enabled;
    $("play-pause-btn").textContent = v.play_label;
    $("expand-btn").textContent = v.expand_label;
    $("dynamicContentContainer").classList.toggle("expanded", v.expanded);
    $("loading-indicator").hidden = !v.loading;
    renderBullets(v);
    renderPlaceholder(v);
    renderFrame(v);
    renderPanels(v);

    if (v.fullscreen_url) { window.open(v.fullscreen_url, "_blank"); }
    if (v.scroll_top) { window.scrollTo({top: 0, behavior: "smooth"}); }
  }

  // Report root class changes made by other scripts so the server can
  // re-propagate them into the frame.
  new MutationObserver(function() {
    if (!view) { return; }
    var dark = html.classList.contains("dark");
    if (dark !== (view.root_classes.indexOf("dark") !== -1)) {
      send({type: "set_root_class", class: "dark", present: dark});
    }
  }).observe(html, {attributes: true, attributeFilter: ["class"]});

  // The back-to-top button shows once the page is scrolled past 300px.
  var scrollThreshold = 300, scrollDebounceMs = 50, scrollTimer = null;
  window.addEventListener("scroll", function() {
    clearTimeout(scrollTimer);
    scrollTimer = setTimeout(function() {
      $("scroll-top-btn").hidden = window.scrollY <= scrollThreshold;
    }, scrollDebounceMs);
  }, {passive: true});
  $("scroll-top-btn").onclick = function() { send({type: "scroll_top"}); };

  $("prev-btn").onclick = function() { send({type: "previous"}); };
  $("next-btn").onclick = function() { send({type: "next"}); };
  $("play-pause-btn").onclick = function() { send({type: "toggle_autoplay"}); };
  $("expand-btn").onclick = function() { send({type: "toggle_expand"}); };
  $("fullscreen-btn").onclick = function() { send({type: "fullscreen"}); };
  $("theme-toggle").onclick = function() { send({type: "toggle_theme"}); };
  $("retry-btn").onclick = function() {
    if (view) { send({type: "go_to", index: view.state.index}); }
  };
  document.querySelectorAll(".panel-trigger").forEach(function(b) {
    b.onclick = function() { send({type: "panel_show", panel_id: b.dataset.panel, source: b.dataset.source}); };
  });

  document.addEventListener("keydown", function(e) {
    var target = document.activeElement ? document.activeElement.tagName : "";
    if ((e.ctrlKey || e.metaKey) && (e.key === "t" || e.key === "T")) {
      e.preventDefault();
    }
    send({type: "key", key: {key: e.key, ctrl: e.ctrlKey, meta: e.metaKey, shift: e.shiftKey, alt: e.altKey, target: target}});
  });

  fetch("/api/session", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({prefers_dark: prefersDark()})
  }).then(function(r) { return r.json(); }).then(function(v) {
    render(v);
    connect(v.session_id);
  });
})();`
