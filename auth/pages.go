package auth

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

const closeWindowScript = `
<script type="text/javascript">
	window.onload = function() {
		window.setTimeout(function() {
			window.close();
		}, 1000);
	};
</script>`

var successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>You are now authorized to access the Fitbit API!</h1>
<br/><h3>You can close this window</h3>
` + closeWindowScript + `
</body>
</html>`))

var failurePage = template.Must(template.New("failure").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>ERROR: {{.Message}}</h1>
{{- if .Hint}}<br/>{{.Hint}}{{end}}
<br/><h3>You can close this window</h3>
{{- if .Detail}}<pre>{{.Detail}}</pre>{{end}}
` + closeWindowScript + `
</body>
</html>`))

func renderSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if err := successPage.Execute(w, nil); err != nil {
		log.Err(err).Msg("Failed to render success page")
	}
}

func renderFailure(w http.ResponseWriter, err error) {
	var cbErr *CallbackError
	if !errors.As(err, &cbErr) {
		cbErr = &CallbackError{Message: msgUnknownError, Detail: err.Error(), Err: err}
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if err := failurePage.Execute(w, cbErr); err != nil {
		log.Err(err).Msg("Failed to render failure page")
	}
}
