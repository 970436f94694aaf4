package content

import "fmt"

// Fallback copy used when a field is missing. Generated sites are Spanish
// first, so the defaults are too.
const (
	DefaultBusinessName      = "Mi Sitio"
	DefaultPrimaryCTA        = "Comenzar ahora"
	DefaultFeaturesTitle     = "Nuestras características"
	DefaultServicesTitle     = "Nuestros servicios"
	DefaultTestimonialsTitle = "Lo que dicen nuestros clientes"
	DefaultContactTitle      = "Contacto"
	DefaultContactSubtitle   = "Escríbenos y te responderemos en menos de 24 horas."
	DefaultContactSubmit     = "Enviar mensaje"
	DefaultCTATitle          = "¿Listo para comenzar?"
	DefaultCTASubtitle       = "Únete a miles de clientes satisfechos"
	DefaultCTAButton         = "Comenzar ahora"
)

func defaultHeroSubtitle(name string) string {
	return fmt.Sprintf("Descubre todo lo que %s puede hacer por ti.", name)
}

func defaultDescription(name string, t BusinessType) string {
	return fmt.Sprintf("%s: theme profesional para %s generado con AnvilWP.", name, t.Label())
}

// placeholder holds the copy used to fill form-mode sections.
type placeholder struct {
	features     []FeatureItem
	services     []FeatureItem
	stats        []StatItem
	testimonials []Testimonial
}

var placeholders = map[BusinessType]placeholder{
	Restaurant: {
		features: []FeatureItem{
			{Icon: "🥘", Title: "Cocina de temporada", Description: "Platos elaborados cada día con producto fresco de mercado."},
			{Icon: "🍷", Title: "Bodega seleccionada", Description: "Vinos de pequeños productores para acompañar cada plato."},
			{Icon: "🌿", Title: "Opciones para todos", Description: "Menús vegetarianos, veganos y sin gluten bajo petición."},
		},
		services: []FeatureItem{
			{Icon: "📅", Title: "Reservas", Description: "Reserva tu mesa online en segundos y sin esperas."},
			{Icon: "🎉", Title: "Eventos privados", Description: "Celebraciones a medida para grupos de hasta 60 personas."},
			{Icon: "🛵", Title: "Para llevar", Description: "Nuestra carta completa, lista para recoger o a domicilio."},
		},
		stats: []StatItem{
			{Value: "15+", Label: "Años de cocina"},
			{Value: "4.8", Label: "Valoración media"},
			{Value: "30k", Label: "Comensales al año"},
		},
		testimonials: []Testimonial{
			{Quote: "La mejor comida de la zona, y un trato impecable de principio a fin.", Author: "Lucía Fernández", Role: "Clienta habitual"},
			{Quote: "Celebramos aquí nuestro aniversario y fue perfecto.", Author: "Jorge Martín", Role: "Cliente"},
		},
	},
	Agency: {
		features: []FeatureItem{
			{Icon: "🎯", Title: "Estrategia primero", Description: "Cada proyecto empieza con objetivos medibles y un plan claro."},
			{Icon: "⚡", Title: "Entregas rápidas", Description: "Sprints cortos con avances visibles cada semana."},
			{Icon: "📈", Title: "Resultados medibles", Description: "Informes mensuales con las métricas que importan a tu negocio."},
		},
		services: []FeatureItem{
			{Icon: "💻", Title: "Diseño web", Description: "Sitios rápidos, accesibles y pensados para convertir."},
			{Icon: "🔍", Title: "SEO", Description: "Posicionamiento orgánico basado en datos y contenido útil."},
			{Icon: "📣", Title: "Marketing digital", Description: "Campañas en buscadores y redes con retorno demostrable."},
		},
		stats: []StatItem{
			{Value: "120+", Label: "Proyectos entregados"},
			{Value: "98%", Label: "Clientes satisfechos"},
			{Value: "10", Label: "Años de experiencia"},
		},
		testimonials: []Testimonial{
			{Quote: "Duplicamos las solicitudes de contacto en tres meses.", Author: "Marta Ruiz", Role: "CEO", Company: "Nortia"},
			{Quote: "Un equipo que entiende el negocio, no solo el diseño.", Author: "Pablo Gil", Role: "Director de marketing", Company: "Avanza"},
		},
	},
	ECommerce: {
		features: []FeatureItem{
			{Icon: "🚚", Title: "Envío en 24/48h", Description: "Recibe tu pedido en casa en uno o dos días laborables."},
			{Icon: "🔒", Title: "Pago seguro", Description: "Tarjeta, transferencia y pasarelas con cifrado de extremo a extremo."},
			{Icon: "↩️", Title: "Devoluciones fáciles", Description: "30 días para cambiar de opinión, sin preguntas."},
		},
		services: []FeatureItem{
			{Icon: "🛍️", Title: "Catálogo completo", Description: "Cientos de productos seleccionados por nuestro equipo."},
			{Icon: "🎁", Title: "Envoltorio regalo", Description: "Presentación cuidada con mensaje personalizado."},
			{Icon: "💬", Title: "Atención al cliente", Description: "Resolvemos tus dudas por chat, email o teléfono."},
		},
		stats: []StatItem{
			{Value: "10k+", Label: "Pedidos enviados"},
			{Value: "4.9", Label: "Valoración en reseñas"},
			{Value: "24h", Label: "Tiempo de envío"},
		},
		testimonials: []Testimonial{
			{Quote: "El pedido llegó al día siguiente y perfectamente embalado.", Author: "Elena Castro", Role: "Compradora"},
			{Quote: "Productos de calidad y un servicio postventa excelente.", Author: "Raúl Ortega", Role: "Comprador"},
		},
	},
	SaaS: {
		features: []FeatureItem{
			{Icon: "🚀", Title: "Empieza en minutos", Description: "Sin instalación: crea tu cuenta y trabaja desde el primer día."},
			{Icon: "🔗", Title: "Integraciones", Description: "Conecta con las herramientas que tu equipo ya usa."},
			{Icon: "🛡️", Title: "Seguridad", Description: "Datos cifrados, copias diarias y cumplimiento RGPD."},
		},
		services: []FeatureItem{
			{Icon: "📊", Title: "Analítica", Description: "Paneles en tiempo real con las métricas clave."},
			{Icon: "🤝", Title: "Onboarding", Description: "Te acompañamos en la puesta en marcha de tu equipo."},
			{Icon: "🧩", Title: "API abierta", Description: "Automatiza flujos y extiende la plataforma a medida."},
		},
		stats: []StatItem{
			{Value: "99.9%", Label: "Disponibilidad"},
			{Value: "2k+", Label: "Equipos activos"},
			{Value: "40%", Label: "Menos tiempo en tareas"},
		},
		testimonials: []Testimonial{
			{Quote: "Reducimos a la mitad el tiempo de gestión semanal.", Author: "Andrea López", Role: "COO", Company: "Logística Sur"},
			{Quote: "La integración con nuestras herramientas fue inmediata.", Author: "Iván Navarro", Role: "CTO", Company: "Fintega"},
		},
	},
	Other: {
		features: []FeatureItem{
			{Icon: "✨", Title: "Calidad", Description: "Cuidamos cada detalle para ofrecerte el mejor resultado."},
			{Icon: "🤝", Title: "Cercanía", Description: "Un trato personal y directo en cada paso."},
			{Icon: "💡", Title: "Experiencia", Description: "Años de trabajo respaldan cada proyecto que hacemos."},
		},
		services: []FeatureItem{
			{Icon: "🎯", Title: "Servicio 1", Description: "Descripción del servicio."},
			{Icon: "💎", Title: "Servicio 2", Description: "Descripción del servicio."},
			{Icon: "⚡", Title: "Servicio 3", Description: "Descripción del servicio."},
		},
		stats: []StatItem{
			{Value: "500+", Label: "Clientes"},
			{Value: "10+", Label: "Años"},
			{Value: "98%", Label: "Satisfacción"},
		},
		testimonials: []Testimonial{
			{Quote: "Excelente servicio y profesionalidad.", Author: "Cliente 1", Role: "Cliente"},
			{Quote: "Superaron nuestras expectativas.", Author: "Cliente 2", Role: "Cliente"},
		},
	},
}

func placeholdersFor(t BusinessType) placeholder {
	if p, ok := placeholders[t]; ok {
		return p
	}
	return placeholders[Other]
}
