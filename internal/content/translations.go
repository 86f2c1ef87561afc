package content

type Translation struct {
	Nav      Nav          `json:"nav"`
	Hero     Hero         `json:"hero"`
	Sections Sections     `json:"sections"`
	Contact  ContactLabel `json:"contact"`
}

type Nav struct {
	Home          string `json:"home"`
	Food          string `json:"food"`
	Entertainment string `json:"entertainment"`
	Photos        string `json:"photos"`
	Blog          string `json:"blog"`
	Contact       string `json:"contact"`
}

type Hero struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	CTABook    string `json:"cta_book"`
	CTAExplore string `json:"cta_explore"`
}

type Sections struct {
	About              string `json:"about"`
	FoodTitle          string `json:"food_title"`
	EntertainmentTitle string `json:"entertainment_title"`
	GalleryTitle       string `json:"gallery_title"`
	BlogTitle          string `json:"blog_title"`
	ContactTitle       string `json:"contact_title"`
	AITitle            string `json:"ai_title"`
	AIDesc             string `json:"ai_desc"`
}

type ContactLabel struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Send    string `json:"send"`
}

// Translate returns the display strings for lang, or English for anything
// outside the supported set.
func Translate(lang Language) Translation {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[DefaultLanguage]
}

const siteTitle = "Apartamentos Arcos Playa"

var translations = map[Language]Translation{
	English: {
		Nav:  Nav{Home: "Home", Food: "Food & Drink", Entertainment: "Entertainment", Photos: "Gallery", Blog: "Blog", Contact: "Contact"},
		Hero: Hero{Title: siteTitle, Subtitle: "Your perfect stay on the Mediterranean coast", CTABook: "Book Now", CTAExplore: "Explore"},
		Sections: Sections{
			About:              "Experience the ultimate relaxation with our luxury beachfront apartments.",
			FoodTitle:          "Taste the Mediterranean",
			EntertainmentTitle: "Leisure & Fun",
			GalleryTitle:       "Our Gallery",
			BlogTitle:          "Travel Journal",
			ContactTitle:       "Get in Touch",
			AITitle:            "AI Concierge",
			AIDesc:             "Ask our AI assistant for personalized itineraries or local tips!",
		},
		Contact: ContactLabel{Name: "Name", Email: "Email", Message: "Message", Send: "Send Request"},
	},
	Spanish: {
		Nav:  Nav{Home: "Inicio", Food: "Gastronomía", Entertainment: "Ocio", Photos: "Galería", Blog: "Blog", Contact: "Contacto"},
		Hero: Hero{Title: siteTitle, Subtitle: "Tu estancia perfecta en la costa mediterránea", CTABook: "Reservar", CTAExplore: "Explorar"},
		Sections: Sections{
			About:              "Vive la máxima relajación con nuestros apartamentos de lujo frente al mar.",
			FoodTitle:          "Saborea el Mediterráneo",
			EntertainmentTitle: "Ocio y Diversión",
			GalleryTitle:       "Nuestra Galería",
			BlogTitle:          "Diario de Viaje",
			ContactTitle:       "Contáctanos",
			AITitle:            "Conserje IA",
			AIDesc:             "¡Pide a nuestro asistente IA itinerarios personalizados o consejos locales!",
		},
		Contact: ContactLabel{Name: "Nombre", Email: "Correo", Message: "Mensaje", Send: "Enviar Solicitud"},
	},
	French: {
		Nav:  Nav{Home: "Accueil", Food: "Gastronomie", Entertainment: "Loisirs", Photos: "Galerie", Blog: "Blog", Contact: "Contact"},
		Hero: Hero{Title: siteTitle, Subtitle: "Votre séjour parfait sur la côte méditerranéenne", CTABook: "Réserver", CTAExplore: "Explorer"},
		Sections: Sections{
			About:              "Découvrez la relaxation ultime avec nos appartements de luxe en bord de mer.",
			FoodTitle:          "Goûtez la Méditerranée",
			EntertainmentTitle: "Loisirs et Plaisir",
			GalleryTitle:       "Notre Galerie",
			BlogTitle:          "Journal de Voyage",
			ContactTitle:       "Contactez-nous",
			AITitle:            "Concierge IA",
			AIDesc:             "Demandez à notre assistant IA des itinéraires personnalisés !",
		},
		Contact: ContactLabel{Name: "Nom", Email: "Email", Message: "Message", Send: "Envoyer"},
	},
	German: {
		Nav:  Nav{Home: "Startseite", Food: "Essen & Trinken", Entertainment: "Unterhaltung", Photos: "Galerie", Blog: "Blog", Contact: "Kontakt"},
		Hero: Hero{Title: siteTitle, Subtitle: "Ihr perfekter Aufenthalt an der Mittelmeerküste", CTABook: "Buchen", CTAExplore: "Entdecken"},
		Sections: Sections{
			About:              "Erleben Sie ultimative Entspannung in unseren luxuriösen Apartments am Strand.",
			FoodTitle:          "Schmecken Sie das Mittelmeer",
			EntertainmentTitle: "Freizeit & Spaß",
			GalleryTitle:       "Unsere Galerie",
			BlogTitle:          "Reisetagebuch",
			ContactTitle:       "Kontaktieren Sie uns",
			AITitle:            "KI-Concierge",
			AIDesc:             "Fragen Sie unseren KI-Assistenten nach persönlichen Reiserouten!",
		},
		Contact: ContactLabel{Name: "Name", Email: "E-Mail", Message: "Nachricht", Send: "Senden"},
	},
	Italian: {
		Nav:  Nav{Home: "Home", Food: "Cibo e Bevande", Entertainment: "Intrattenimento", Photos: "Galleria", Blog: "Blog", Contact: "Contatto"},
		Hero: Hero{Title: siteTitle, Subtitle: "Il tuo soggiorno perfetto sulla costa mediterranea", CTABook: "Prenota Ora", CTAExplore: "Esplora"},
		Sections: Sections{
			About:              "Vivi il massimo relax con i nostri appartamenti di lusso fronte mare.",
			FoodTitle:          "Assapora il Mediterraneo",
			EntertainmentTitle: "Svago e Divertimento",
			GalleryTitle:       "La Nostra Galleria",
			BlogTitle:          "Diario di Viaggio",
			ContactTitle:       "Contattaci",
			AITitle:            "Concierge IA",
			AIDesc:             "Chiedi al nostro assistente IA itinerari personalizzati!",
		},
		Contact: ContactLabel{Name: "Nome", Email: "Email", Message: "Messaggio", Send: "Invia"},
	},
}
