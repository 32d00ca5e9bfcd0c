package i18n

var catalog = map[Locale]map[Key]string{
	English: {
		KeyCVBuilder:           "CV Builder",
		KeyPersonalInformation: "Personal Information",
		KeyFullName:            "Full Name",
		KeyEmail:               "Email",
		KeyPhone:               "Phone",
		KeyAddress:             "Address",
		KeyLinkedIn:            "LinkedIn",
		KeyWebsite:             "Website",
		KeyDateOfBirth:         "Date of Birth",
		KeyShowAge:             "Show age instead of date of birth",
		KeyShowImage:           "Show image",
		KeyUploadImage:         "Upload Image",
		KeyAge:                 "Age",
		KeyEducation:           "Education",
		KeyDegree:              "Degree",
		KeyInstitution:         "Institution",
		KeyStartDate:           "Start Date",
		KeyEndDate:             "End Date",
		KeyDescription:         "Description",
		KeyWorkExperience:      "Work Experience",
		KeyJobTitle:            "Job Title",
		KeyCompany:             "Company",
		KeyPresent:             "Present",
		KeySkills:              "Skills",
		KeySkillName:           "Skill Name",
		KeyLevel:               "Level",
		KeyLanguages:           "Languages",
		KeyLanguageName:        "Language",
		KeyProficiency:         "Proficiency",
		KeyAddEducation:        "Add Education",
		KeyAddExperience:       "Add Experience",
		KeyAddSkill:            "Add Skill",
		KeyAddLanguage:         "Add Language",
		KeyLoad:                "Load",
		KeySave:                "Save",
		KeyDownload:            "Download PDF",
		KeyBeginner:            "Beginner",
		KeyIntermediate:        "Intermediate",
		KeyAdvanced:            "Advanced",
		KeyExpert:              "Expert",
		KeyBasic:               "Basic",
		KeyConversational:      "Conversational",
		KeyFluent:              "Fluent",
		KeyNative:              "Native",
		KeyYourName:            "Your Name",
	},
	German: {
		KeyCVBuilder:           "Lebenslauf-Editor",
		KeyPersonalInformation: "Persönliche Daten",
		KeyFullName:            "Vollständiger Name",
		KeyEmail:               "E-Mail",
		KeyPhone:               "Telefon",
		KeyAddress:             "Adresse",
		KeyLinkedIn:            "LinkedIn",
		KeyWebsite:             "Webseite",
		KeyDateOfBirth:         "Geburtsdatum",
		KeyShowAge:             "Alter statt Geburtsdatum anzeigen",
		KeyShowImage:           "Bild anzeigen",
		KeyUploadImage:         "Bild hochladen",
		KeyAge:                 "Alter",
		KeyEducation:           "Ausbildung",
		KeyDegree:              "Abschluss",
		KeyInstitution:         "Einrichtung",
		KeyStartDate:           "Beginn",
		KeyEndDate:             "Ende",
		KeyDescription:         "Beschreibung",
		KeyWorkExperience:      "Berufserfahrung",
		KeyJobTitle:            "Position",
		KeyCompany:             "Unternehmen",
		KeyPresent:             "Heute",
		KeySkills:              "Kenntnisse",
		KeySkillName:           "Kenntnis",
		KeyLevel:               "Niveau",
		KeyLanguages:           "Sprachen",
		KeyLanguageName:        "Sprache",
		KeyProficiency:         "Sprachniveau",
		KeyAddEducation:        "Ausbildung hinzufügen",
		KeyAddExperience:       "Erfahrung hinzufügen",
		KeyAddSkill:            "Kenntnis hinzufügen",
		KeyAddLanguage:         "Sprache hinzufügen",
		KeyLoad:                "Laden",
		KeySave:                "Speichern",
		KeyDownload:            "PDF herunterladen",
		KeyBeginner:            "Anfänger",
		KeyIntermediate:        "Fortgeschritten",
		KeyAdvanced:            "Sehr gut",
		KeyExpert:              "Experte",
		KeyBasic:               "Grundkenntnisse",
		KeyConversational:      "Gute Kenntnisse",
		KeyFluent:              "Fließend",
		KeyNative:              "Muttersprache",
		KeyYourName:            "Ihr Name",
	},
	Spanish: {
		KeyCVBuilder:           "Creador de CV",
		KeyPersonalInformation: "Información personal",
		KeyFullName:            "Nombre completo",
		KeyEmail:               "Correo electrónico",
		KeyPhone:               "Teléfono",
		KeyAddress:             "Dirección",
		KeyLinkedIn:            "LinkedIn",
		KeyWebsite:             "Sitio web",
		KeyDateOfBirth:         "Fecha de nacimiento",
		KeyShowAge:             "Mostrar edad en lugar de fecha de nacimiento",
		KeyShowImage:           "Mostrar imagen",
		KeyUploadImage:         "Subir imagen",
		KeyAge:                 "Edad",
		KeyEducation:           "Educación",
		KeyDegree:              "Título",
		KeyInstitution:         "Institución",
		KeyStartDate:           "Fecha de inicio",
		KeyEndDate:             "Fecha de fin",
		KeyDescription:         "Descripción",
		KeyWorkExperience:      "Experiencia laboral",
		KeyJobTitle:            "Puesto",
		KeyCompany:             "Empresa",
		KeyPresent:             "Actualidad",
		KeySkills:              "Habilidades",
		KeySkillName:           "Habilidad",
		KeyLevel:               "Nivel",
		KeyLanguages:           "Idiomas",
		KeyLanguageName:        "Idioma",
		KeyProficiency:         "Dominio",
		KeyAddEducation:        "Añadir educación",
		KeyAddExperience:       "Añadir experiencia",
		KeyAddSkill:            "Añadir habilidad",
		KeyAddLanguage:         "Añadir idioma",
		KeyLoad:                "Cargar",
		KeySave:                "Guardar",
		KeyDownload:            "Descargar PDF",
		KeyBeginner:            "Principiante",
		KeyIntermediate:        "Intermedio",
		KeyAdvanced:            "Avanzado",
		KeyExpert:              "Experto",
		KeyBasic:               "Básico",
		KeyConversational:      "Conversacional",
		KeyFluent:              "Fluido",
		KeyNative:              "Nativo",
		KeyYourName:            "Tu nombre",
	},
	Croatian: {
		KeyCVBuilder:           "Izrada životopisa",
		KeyPersonalInformation: "Osobni podaci",
		KeyFullName:            "Ime i prezime",
		KeyEmail:               "E-pošta",
		KeyPhone:               "Telefon",
		KeyAddress:             "Adresa",
		KeyLinkedIn:            "LinkedIn",
		KeyWebsite:             "Web stranica",
		KeyDateOfBirth:         "Datum rođenja",
		KeyShowAge:             "Prikaži dob umjesto datuma rođenja",
		KeyShowImage:           "Prikaži sliku",
		KeyUploadImage:         "Učitaj sliku",
		KeyAge:                 "Dob",
		KeyEducation:           "Obrazovanje",
		KeyDegree:              "Zvanje",
		KeyInstitution:         "Ustanova",
		KeyStartDate:           "Datum početka",
		KeyEndDate:             "Datum završetka",
		KeyDescription:         "Opis",
		KeyWorkExperience:      "Radno iskustvo",
		KeyJobTitle:            "Radno mjesto",
		KeyCompany:             "Tvrtka",
		KeyPresent:             "Danas",
		KeySkills:              "Vještine",
		KeySkillName:           "Vještina",
		KeyLevel:               "Razina",
		KeyLanguages:           "Jezici",
		KeyLanguageName:        "Jezik",
		KeyProficiency:         "Razina znanja",
		KeyAddEducation:        "Dodaj obrazovanje",
		KeyAddExperience:       "Dodaj iskustvo",
		KeyAddSkill:            "Dodaj vještinu",
		KeyAddLanguage:         "Dodaj jezik",
		KeyLoad:                "Učitaj",
		KeySave:                "Spremi",
		KeyDownload:            "Preuzmi PDF",
		KeyBeginner:            "Početnik",
		KeyIntermediate:        "Srednja razina",
		KeyAdvanced:            "Napredno",
		KeyExpert:              "Stručnjak",
		KeyBasic:               "Osnovno",
		KeyConversational:      "Konverzacijski",
		KeyFluent:              "Tečno",
		KeyNative:              "Materinji",
		KeyYourName:            "Vaše ime",
	},
}
