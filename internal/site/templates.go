package site

// pageTemplate is the html/template for a viewer page. Nav and content are
// rendered server-side; Live pages also load the session script.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.AssetBase}}style.css">
</head>
<body>
  <nav class="sidebar" id="nav-menu">
    <div class="sidebar-header">
      <a href="{{.HomeHref}}" class="project-title">{{.ProjectName}}</a>
    </div>
    <ul class="nav-list">
{{- range .Nav}}
      <li><a href="{{.Href}}" data-link="{{.Link}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a></li>
{{- end}}
    </ul>
  </nav>
  <main class="content">
    <article class="page-content" id="content">
      {{.Content}}
    </article>
  </main>
{{- if .Live}}
  <script src="{{.AssetBase}}viewer.js" data-ws="{{.SocketPath}}" data-default="{{.DefaultLink}}"></script>
{{- end}}
</body>
</html>`

// cssContent styles both live and exported pages.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #59636e;
  --sidebar-bg: #f6f8fa;
  --border: #d1d9e0;
  --accent: #0969da;
  --code-bg: #f6f8fa;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  display: flex;
  min-height: 100vh;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--fg);
  background: var(--bg);
}

.sidebar {
  width: 280px;
  flex-shrink: 0;
  border-right: 1px solid var(--border);
  background: var(--sidebar-bg);
  padding: 1rem 0;
  overflow-y: auto;
  position: sticky;
  top: 0;
  height: 100vh;
}

.sidebar-header { padding: 0 1rem 1rem; border-bottom: 1px solid var(--border); }
.project-title { font-weight: 600; font-size: 1.1rem; color: var(--fg); text-decoration: none; }

.nav-list { list-style: none; margin: 0; padding: 0.5rem 0; }
.nav-list a {
  display: block;
  padding: 0.35rem 1rem;
  color: var(--muted);
  text-decoration: none;
  border-left: 3px solid transparent;
}
.nav-list a:hover { color: var(--fg); background: rgba(0, 0, 0, 0.04); }
.nav-list a.active {
  color: var(--accent);
  border-left-color: var(--accent);
  background: rgba(9, 105, 218, 0.08);
  font-weight: 600;
}

.content { flex: 1; min-width: 0; padding: 2rem 3rem; }
.page-content { max-width: 860px; line-height: 1.6; }
.page-content h1 { border-bottom: 1px solid var(--border); padding-bottom: 0.3rem; }
.page-content pre { background: var(--code-bg); padding: 1rem; overflow-x: auto; border-radius: 6px; }
.page-content code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }
.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 0.4rem 0.8rem; }
.page-content img { max-width: 100%; }

@media (max-width: 768px) {
  body { flex-direction: column; }
  .sidebar { width: 100%; height: auto; position: static; }
  .content { padding: 1rem; }
}
`

// jsContent connects a live page to its server-side session. The server
// drives both regions; the script only applies operations and reports clicks.
const jsContent = `(function() {
  var script = document.currentScript;
  var navMenu = document.getElementById('nav-menu');
  var list = navMenu.querySelector('.nav-list');
  var content = document.getElementById('content');

  var params = new URLSearchParams(window.location.search);
  var proto = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
  var url = proto + '//' + window.location.host + script.getAttribute('data-ws');
  if (params.get('doc')) {
    url += '?doc=' + encodeURIComponent(params.get('doc'));
  }

  var socket = new WebSocket(url);
  var links = {};

  function insertItems(items) {
    list.innerHTML = '';
    links = {};
    items.forEach(function(item) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = '?doc=' + encodeURIComponent(item.link);
      a.setAttribute('data-link', item.link);
      a.textContent = item.title;
      li.appendChild(a);
      list.appendChild(li);
      links[item.id] = a;
    });
  }

  socket.addEventListener('message', function(event) {
    var msg = JSON.parse(event.data);
    switch (msg.op) {
      case 'insert_items':
        insertItems(msg.items || []);
        break;
      case 'set_active':
        if (links[msg.id]) {
          links[msg.id].classList.toggle('active', msg.active);
        }
        break;
      case 'replace_content':
        content.innerHTML = msg.html;
        break;
      case 'error':
        console.warn('docview:', msg.message);
        break;
    }
  });

  navMenu.addEventListener('click', function(event) {
    var target = event.target;
    if (target.tagName !== 'A' || !target.hasAttribute('data-link')) {
      return;
    }
    if (socket.readyState !== WebSocket.OPEN) {
      return;
    }
    event.preventDefault();
    var link = target.getAttribute('data-link');
    history.pushState(null, '', '?doc=' + encodeURIComponent(link));
    socket.send(JSON.stringify({ type: 'select', link: link }));
  });

  // Back and forward reselect the document named by the restored URL.
  window.addEventListener('popstate', function() {
    var link = new URLSearchParams(window.location.search).get('doc') ||
      script.getAttribute('data-default');
    if (!link || socket.readyState !== WebSocket.OPEN) {
      return;
    }
    socket.send(JSON.stringify({ type: 'select', link: link }));
  });
})();
`
