package backend

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/util"
)

type panelData struct {
	Prefix   string // with trailing slash
	User     *core.Snapshot
	Articles []*core.Article
	Lang     util.Lang
}

func (data *panelData) FormatDate(a *core.Article) string {
	return util.FormatDate(a.PublishedAt, data.Lang)
}

// panel shows the articles which the user may edit: all of them for admins, the own ones for redactors.
func (s *Server) panel(w http.ResponseWriter, r *request, params httprouter.Params) error {

	var articles []*core.Article
	var err error
	if r.User.Role == core.Admin {
		articles, err = s.Blog.Articles(r.Context())
	} else {
		articles, err = s.Blog.ArticlesOf(r.Context(), r.User)
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return panelTmpl.Execute(w, &panelData{
		Prefix:   s.Prefix + "/",
		User:     r.User,
		Articles: articles,
		Lang:     r.Lang,
	})
}

var panelTmpl = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html lang="es">
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<title>Panel de redacción</title>
		<style>
			body {
				font-family: sans-serif;
				margin: 0 auto;
				max-width: 60rem;
				padding: 1rem;
			}
			table {
				border-collapse: collapse;
				width: 100%;
			}
			td, th {
				border-bottom: 1px solid #dee2e6;
				padding: 0.3rem;
				text-align: left;
			}
			input, textarea {
				box-sizing: border-box;
				width: 100%;
			}
			textarea {
				min-height: 10rem;
			}
		</style>
	</head>
	<body>

		<nav>
			{{ .User.Name }} ({{ .User.Role }})
			<button type="button" id="logout">Cerrar sesión</button>
		</nav>

		<h1>Panel de redacción</h1>

		<table>
			<thead>
				<tr>
					<th>Título</th>
					<th>Categoría</th>
					<th>Autor</th>
					<th>Publicado</th>
					<th></th>
				</tr>
			</thead>
			<tbody>
				{{ range .Articles }}
					<tr>
						<td><a href="api/articulo-completo/{{ .ID }}">{{ .Title }}</a></td>
						<td>{{ .Category }}</td>
						<td>{{ .AuthorName }}</td>
						<td>{{ $.FormatDate . }}</td>
						<td><button type="button" class="delete" data-id="{{ .ID }}">Eliminar</button></td>
					</tr>
				{{ else }}
					<tr>
						<td colspan="5">No hay artículos.</td>
					</tr>
				{{ end }}
			</tbody>
		</table>

		<h2>Nuevo artículo</h2>

		<form id="create">
			<p><label>Título <input name="titulo" required></label></p>
			<p><label>Categoría <input name="categoria" required></label></p>
			<p><label>Resumen <input name="resumen"></label></p>
			<p><label>Imagen <input name="imagen"></label></p>
			<p><label>Contenido <textarea name="contenido" required></textarea></label></p>
			<p><button type="submit">Publicar</button></p>
		</form>

		<script>

			async function send(method, url, body) {
				const response = await fetch(url, {
					method: method,
					headers: {"Content-Type": "application/json"},
					body: body ? JSON.stringify(body) : undefined
				});
				const data = await response.json();
				if (!response.ok) {
					alert(data.error);
					return;
				}
				location.reload();
			}

			document.getElementById("create").addEventListener("submit", function(event) {
				event.preventDefault();
				send("POST", "api/articulos", Object.fromEntries(new FormData(this)));
			});

			for (const button of document.getElementsByClassName("delete")) {
				button.addEventListener("click", function() {
					if (confirm("¿Eliminar este artículo?")) {
						send("DELETE", "api/articulos/" + this.dataset.id);
					}
				});
			}

			document.getElementById("logout").addEventListener("click", async function() {
				await fetch("api/logout", {method: "POST"});
				location.href = "{{ .Prefix }}";
			});

		</script>
	</body>
</html>`))
