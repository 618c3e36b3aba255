package locale

import "fmt"

// Messages holds the user-visible strings for one language.
type Messages struct {
	// Error messages, one per failure kind.
	EmptyInput      string
	Configuration   string
	EmptyResponse   string
	Network         string
	Quota           string
	RepeatedFailure string
	Generic         string

	// Loading rotates while a request is in flight.
	Loading []string

	SubmitLabel      string
	retryAction      string
	automaticAttempt string

	// File ingestion.
	fileTooLarge    string
	fileUnsupported string
	PDFWorker       string
	PDFUnreadable   string
	DocUnreadable   string
	TextUnreadable  string

	// Custom tone validation.
	ToneNameRequired string
	ToneNameTooShort string
	ToneNameTooLong  string
}

// RetryAction labels the manual retry affordance.
func (m Messages) RetryAction(remaining int) string {
	return fmt.Sprintf(m.retryAction, remaining)
}

// AutomaticAttempt labels an automatic retry in progress. attempt is 1-based.
func (m Messages) AutomaticAttempt(attempt, maxAttempts int) string {
	return fmt.Sprintf(m.automaticAttempt, attempt, maxAttempts)
}

// FileTooLarge reports a file over the size limit.
func (m Messages) FileTooLarge(name string) string {
	return fmt.Sprintf(m.fileTooLarge, name)
}

// FileUnsupported reports a file whose type cannot be read.
func (m Messages) FileUnsupported(kind string) string {
	return fmt.Sprintf(m.fileUnsupported, kind)
}

var french = Messages{
	EmptyInput:      "Le texte est vide. Collez des CGU ou un contrat à déchiffrer.",
	Configuration:   "La clé API n'est pas configurée. L'application ne peut pas fonctionner.",
	EmptyResponse:   "L'IA n'a renvoyé aucun texte. Réessayez dans un instant.",
	Network:         "Problème de connexion. Vérifiez votre réseau, nouvelle tentative en cours...",
	Quota:           "Trop de demandes pour le moment. Patientez quelques minutes avant de réessayer.",
	RepeatedFailure: "La reformulation échoue à répétition. Relancez une nouvelle demande plus tard.",
	Generic:         "Oups, la reformulation a échoué. Nos avocats-robots sont peut-être en pause café. Réessayez plus tard.",

	Loading: []string{
		"Lecture des petites lignes...",
		"Traduction du jargon juridique...",
		"Recherche des clauses abusives...",
		"Consultation de nos avocats-robots...",
		"Préparation de la version lisible...",
	},

	SubmitLabel:      "Déchiffrer ce charabia",
	retryAction:      "Réessayer (%d tentatives restantes)",
	automaticAttempt: "Tentative automatique #%d/%d",

	fileTooLarge:    "%s : le fichier est trop volumineux. Taille maximale : 10MB.",
	fileUnsupported: "Type de fichier non supporté: %s. Formats supportés: PDF, DOC, DOCX, TXT, MD, CSV.",
	PDFWorker:       "Le moteur de lecture PDF n'a pas pu être initialisé. Vérifiez la configuration du lecteur PDF.",
	PDFUnreadable:   "Impossible de lire le fichier PDF. Vérifiez qu'il n'est pas protégé par mot de passe.",
	DocUnreadable:   "Impossible de lire le fichier Word. Assurez-vous que le format est supporté (.doc, .docx).",
	TextUnreadable:  "Impossible de lire le fichier texte.",

	ToneNameRequired: "Le nom du ton est obligatoire",
	ToneNameTooShort: "Le nom doit contenir au moins 3 caractères",
	ToneNameTooLong:  "Le nom ne peut pas dépasser 50 caractères",
}

var english = Messages{
	EmptyInput:      "The text is empty. Paste some terms of service or a contract to decode.",
	Configuration:   "The API key is not configured. The application cannot work.",
	EmptyResponse:   "The AI returned no text. Please try again in a moment.",
	Network:         "Connection problem. Check your network, retrying...",
	Quota:           "Too many requests right now. Wait a few minutes before trying again.",
	RepeatedFailure: "The reformulation keeps failing. Start a new request later.",
	Generic:         "Oops, the reformulation failed. Our robot lawyers may be on a coffee break. Try again later.",

	Loading: []string{
		"Reading the fine print...",
		"Translating legal jargon...",
		"Hunting for abusive clauses...",
		"Consulting our robot lawyers...",
		"Preparing the readable version...",
	},

	SubmitLabel:      "Decode this gibberish",
	retryAction:      "Retry (%d attempts remaining)",
	automaticAttempt: "Automatic attempt #%d/%d",

	fileTooLarge:    "%s: the file is too large. Maximum size: 10MB.",
	fileUnsupported: "Unsupported file type: %s. Supported formats: PDF, DOC, DOCX, TXT, MD, CSV.",
	PDFWorker:       "The PDF reader could not be initialised. Check the PDF reader configuration.",
	PDFUnreadable:   "Unable to read the PDF file. Make sure it is not password-protected.",
	DocUnreadable:   "Unable to read the Word file. Make sure the format is supported (.doc, .docx).",
	TextUnreadable:  "Unable to read the text file.",

	ToneNameRequired: "The tone name is required",
	ToneNameTooShort: "The name must be at least 3 characters long",
	ToneNameTooLong:  "The name cannot exceed 50 characters",
}

// For returns the messages for a language code, French for unknown codes.
func For(code Code) Messages {
	if code == EN {
		return english
	}
	return french
}
