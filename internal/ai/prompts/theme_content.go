package prompts

import (
	"fmt"
	"strings"
)

// Strategy selects the prompt used to ask for theme content.
type Strategy string

const (
	Simplified Strategy = "simplified"
	Expanded   Strategy = "expanded"
)

// ParseStrategy accepts "simplified" or "expanded", case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Simplified:
		return Simplified, nil
	case Expanded:
		return Expanded, nil
	}
	return "", fmt.Errorf("prompts: unknown generation strategy %q", s)
}

// SystemPrompt frames every theme content request.
const SystemPrompt = "Eres un diseñador web experto y copywriter. Respondes únicamente con un objeto JSON válido, sin markdown ni explicaciones."

// ThemeContent returns the user prompt for the given strategy.
func ThemeContent(strategy Strategy, userMessage string) string {
	userMessage = strings.TrimSpace(userMessage)
	if strategy == Simplified {
		return fmt.Sprintf(simplifiedTemplate, userMessage)
	}
	return fmt.Sprintf(expandedTemplate, designSystem, userMessage)
}

const simplifiedTemplate = `El usuario quiere crear una web WordPress y te dice: "%s"

Genera un objeto JSON con esta estructura:

{
  "businessName": "Nombre del negocio extraído o sugerido",
  "businessType": "Restaurante|Agencia|eCommerce|Blog|SaaS|Portfolio|Otro",
  "tagline": "Un tagline pegadizo y profesional",
  "hero": {
    "title": "Título principal (máx 60 caracteres)",
    "subtitle": "Subtítulo descriptivo (máx 120 caracteres)",
    "cta": "Texto del botón principal",
    "badge": "Texto corto opcional (Nuevo, Oferta...)"
  },
  "sections": [
    {
      "type": "services|features|stats|testimonials|cta|contact",
      "title": "Título de la sección",
      "items": [
        {"title": "Título del item", "description": "Descripción breve", "icon": "emoji"}
      ]
    }
  ],
  "colors": {"primary": "#hex", "secondary": "#hex", "accent": "#hex"}
}

Reglas:
- Contenido real y específico para el tipo de negocio.
- Entre 3 y 6 elementos por sección.
- Si el usuario menciona un nombre, úsalo; si no, sugiere uno.
- Responde SOLO con el JSON.`

const designSystem = `Diseñas sitios profesionales con estética oscura y acentos brillantes.
- Fondos #0d1117 y #161b27, acentos azul #3B82F6 y violeta #8B5CF6.
- Titulares grandes y concretos, orientados a beneficios; nada de "Bienvenido".
- CTAs accionables ("Solicita tu demo gratis", no "Ver más").
- Testimonios con nombre completo, cargo y empresa creíbles.
- Cifras impresionantes pero creíbles para el tamaño del negocio.`

const expandedTemplate = `%s

El usuario quiere: "%s"

Genera un objeto JSON con esta estructura exacta:

{
  "businessName": "Nombre del negocio",
  "businessType": "Restaurante|Agencia|eCommerce|Blog|SaaS|Portfolio|Otro",
  "tagline": "Tagline de máx 80 caracteres",
  "description": "Meta description SEO de máx 160 caracteres",
  "hero": {
    "badge": "Texto opcional del badge",
    "title": "Título principal de 40-60 caracteres",
    "titleAccent": "Palabra o frase corta del título a destacar con degradado",
    "subtitle": "Subtítulo de 100-140 caracteres",
    "cta": {"primary": "Botón principal", "secondary": "Botón secundario opcional"}
  },
  "features": {
    "title": "Por qué elegirnos",
    "subtitle": "Opcional",
    "items": [{"icon": "emoji", "title": "Beneficio", "description": "80-120 caracteres"}]
  },
  "services": {
    "title": "Nuestros servicios",
    "items": [{"icon": "emoji", "title": "Servicio", "description": "80-120 caracteres"}]
  },
  "stats": [{"value": "500+", "label": "Proyectos completados"}],
  "testimonials": {
    "title": "Lo que dicen nuestros clientes",
    "items": [{"quote": "140-180 caracteres", "author": "Nombre Apellido", "role": "Cargo", "company": "Empresa"}]
  },
  "contact": {"title": "Hablemos", "subtitle": "Opcional", "button": "Enviar mensaje"},
  "cta": {"title": "30-50 caracteres", "subtitle": "80-120 caracteres", "button": "Texto del botón"},
  "colors": {"primary": "#hex del sector", "accent": "#hex", "secondary": "#hex"},
  "seo": {"keywords": ["keyword1", "keyword2", "keyword3"]}
}

Reglas:
1. Contenido específico del negocio, nunca genérico.
2. Entre 3 y 6 features, servicios y testimonios; siempre 3 stats.
3. Omite "services" o "contact" si no tienen sentido para el negocio.
4. Responde SOLO con el JSON.`
