package ai

import (
	"CasaFacil/models"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxCandidates caps how many listings are sent with a recommendation request.
const MaxCandidates = 10

const assistantSystem = `Eres un asistente virtual experto en bienes raíces para la plataforma "Casa Fácil".
Tu trabajo es ayudar a las personas a encontrar la vivienda perfecta, responder preguntas sobre precios, zonas, disponibilidad y dar consejos sobre arrendamiento.

Sé amigable, profesional y conciso. Si no tienes información específica, sugiere al usuario que use los filtros de búsqueda o contacte directamente con los propietarios.`

var pesos = message.NewPrinter(language.MustParse("es-CO"))

func formatPesos(n int64) string {
	return pesos.Sprintf("%d", n)
}

func orUnset(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func DescriptionPrompt(f models.PropertyFacts) string {
	price := "No especificado"
	if f.Price != nil {
		price = formatPesos(*f.Price) + " pesos mensuales"
	}
	area := "No especificada"
	if f.Area != nil {
		area = pesos.Sprintf("%v m²", *f.Area)
	}
	bedrooms := "No especificado"
	if f.Bedrooms != nil {
		bedrooms = fmt.Sprint(*f.Bedrooms)
	}
	bathrooms := "No especificado"
	if f.Bathrooms != nil {
		bathrooms = fmt.Sprint(*f.Bathrooms)
	}

	var b strings.Builder
	b.WriteString("Genera una descripción atractiva y profesional para esta propiedad:\n\n")
	fmt.Fprintf(&b, "Tipo: %s\n", orUnset(f.Type, "No especificado"))
	fmt.Fprintf(&b, "Ubicación: %s\n", orUnset(f.Location, "No especificada"))
	fmt.Fprintf(&b, "Precio: %s\n", price)
	fmt.Fprintf(&b, "Área: %s\n", area)
	fmt.Fprintf(&b, "Habitaciones: %s\n", bedrooms)
	fmt.Fprintf(&b, "Baños: %s\n", bathrooms)
	fmt.Fprintf(&b, "Características: %s\n\n", orUnset(strings.Join(f.Features, ", "), "No especificadas"))
	b.WriteString("La descripción debe estar en español, ser persuasiva, destacar los beneficios y no superar las 200 palabras.")
	return b.String()
}

func RecommendationPrompt(prefs models.UserPreferences, candidates []models.Property) string {
	budget := "No especificado"
	if prefs.Budget != nil {
		budget = formatPesos(*prefs.Budget) + " pesos"
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	var b strings.Builder
	b.WriteString("Como experto inmobiliario, necesito que recomiendes las mejores opciones de las siguientes propiedades disponibles:\n\n")
	b.WriteString("Preferencias del usuario:\n")
	fmt.Fprintf(&b, "- Presupuesto: %s\n", budget)
	fmt.Fprintf(&b, "- Ubicación preferida: %s\n", orUnset(prefs.Location, "Cualquiera"))
	fmt.Fprintf(&b, "- Tipo de propiedad: %s\n", orUnset(prefs.PropertyType, "Cualquiera"))
	fmt.Fprintf(&b, "- Características importantes: %s\n\n", orUnset(strings.Join(prefs.MustHaveFeatures, ", "), "Ninguna especificada"))
	b.WriteString("Propiedades disponibles:\n")
	for i, p := range candidates {
		fmt.Fprintf(&b, "%d. %s - %s pesos/mes - %s, %s\n", i+1, p.Title, formatPesos(p.Price), p.Location.Neighborhood, p.Location.City)
	}
	b.WriteString("\nPor favor, recomienda las 3 mejores opciones y explica brevemente por qué son ideales para este usuario.")
	return b.String()
}

func ChatPrompt(message, history string) string {
	if strings.TrimSpace(history) == "" {
		return message
	}
	return fmt.Sprintf("Contexto: %s\n\nPregunta del usuario: %s", history, message)
}

// FormatHistory renders earlier turns as chat context. Empty turns are
// skipped; an empty history yields "".
func FormatHistory(history []models.ChatMessage) string {
	var b strings.Builder
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("Historial de conversación reciente:\n")
		}
		speaker := "Usuario"
		if m.Role == models.ChatRoleAssistant {
			speaker = "Asistente"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, content)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
