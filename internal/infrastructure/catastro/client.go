// Package catastro consulta la existencia de referencias catastrales en la Sede Electrónica
// del Catastro (servicio OVC Consulta_DNPRC).
package catastro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"

	appfiscal "github.com/jhoicas/fincas-api/internal/application/fiscal"
	"github.com/jhoicas/fincas-api/internal/domain"
)

var _ appfiscal.CadastralChecker = (*Client)(nil)

const consultaDNPRCPath = "/ovcservweb/OVCSWLocalizacionRC/OVCCallejero.asmx/Consulta_DNPRC"

// Client implementa CadastralChecker sobre HTTP GET. El plazo lo fija el contexto del llamador;
// el timeout del http.Client es solo una cota superior.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin barra final (ej: https://ovc.catastro.meh.es).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Check consulta los datos no protegidos de la referencia. Una referencia inexistente no es
// un error de transporte: devuelve IsValid=false con el mensaje del Catastro.
func (c *Client) Check(ctx context.Context, reference string) (*appfiscal.CadastralCheck, error) {
	q := url.Values{}
	q.Set("Provincia", "")
	q.Set("Municipio", "")
	q.Set("RefCat", reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+consultaDNPRCPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("catastro: construir petición: %w", err)
	}
	req.Header.Set("Accept", "text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: catastro: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: catastro: leer respuesta: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catastro: HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}
	return parseConsultaDNP(body)
}

// parseConsultaDNP interpreta <consulta_dnp>: control/cuerr > 0 indica error (lerr/err/des);
// control/cudnp >= 1 indica que existe al menos un inmueble.
func parseConsultaDNP(body []byte) (*appfiscal.CadastralCheck, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("%w: catastro: XML inválido: %v", domain.ErrUpstream, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: catastro: respuesta vacía", domain.ErrUpstream)
	}

	if cuerr := text(root.FindElement(".//control/cuerr")); cuerr != "" && cuerr != "0" {
		msg := text(root.FindElement(".//lerr/err/des"))
		if code := text(root.FindElement(".//lerr/err/cod")); code != "" {
			msg = fmt.Sprintf("%s (código %s)", msg, code)
		}
		if msg == "" {
			msg = "referencia catastral no encontrada"
		}
		return &appfiscal.CadastralCheck{IsValid: false, Message: msg}, nil
	}

	if cudnp := text(root.FindElement(".//control/cudnp")); cudnp == "" || cudnp == "0" {
		return &appfiscal.CadastralCheck{IsValid: false, Message: "el Catastro no devolvió inmuebles para la referencia"}, nil
	}

	return &appfiscal.CadastralCheck{IsValid: true, Message: text(root.FindElement(".//bico/bi/ldt"))}, nil
}

func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
