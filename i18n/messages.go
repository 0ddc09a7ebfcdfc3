package i18n

var catalog = map[string]map[string]string{
	"en": {
		"required":      "Required",
		"invalid_email": "Invalid e-mail address",
		"invalid_date":  "Invalid date (expected YYYY-MM-DD)",
		"too_long":      "Too long",

		"app_title":        "Records",
		"nav_categories":   "Categories",
		"nav_people":       "People",
		"nav_logout":       "Logout",
		"search":           "Search",
		"save":             "Save",
		"cancel":           "Cancel",
		"delete":           "Delete",
		"edit":             "Edit",
		"add":              "Add",
		"previous":         "Previous",
		"next":             "Next",
		"no_results":       "No records found.",
		"page_of":          "Page %d of %d",
		"signed_in_as":     "Signed in as",
		"category":         "Category",
		"categories":       "Categories",
		"people":           "People",
		"full_name":        "Full name",
		"birth_date":       "Birth date",
		"address":          "Address",
		"contact_number":   "Contact number",
		"email":            "E-mail",
		"username":         "Username",
		"password":         "Password",
		"confirm_password": "Confirm password",
		"current_password": "Current password",
		"new_password":     "New password",
		"change_password":  "Change password",
		"select_category":  "Select a category",
		"login":            "Login",
		"error_title":      "Something went wrong",

		"flash_login_success":         "Login successful!",
		"flash_login_invalid":         "Invalid username or password.",
		"flash_category_added":        "Category added successfully!",
		"flash_category_updated":      "Category updated successfully!",
		"flash_category_deleted":      "Category deleted successfully!",
		"flash_category_not_found":    "Category not found",
		"flash_category_name_needed":  "Category name is required",
		"flash_person_added":          "Person added successfully!",
		"flash_person_updated":        "Person updated successfully!",
		"flash_person_deleted":        "Person %s has been deleted",
		"flash_person_not_found":      "Person not found",
		"flash_password_mismatch":     "Password and confirm password don't match",
		"flash_select_category":       "Please select a category",
		"flash_invalid_category":      "Invalid category selected",
		"flash_username_taken":        "Username already exists",
		"flash_form_invalid":          "Please correct the highlighted fields",
		"flash_password_current_bad":  "Current password is incorrect",
		"flash_password_both_needed":  "Please fill out both password fields",
		"flash_password_new_mismatch": "New password and confirm password don't match",
		"flash_password_saved":        "Password changed successfully!",
		"flash_password_too_long":     "Password must be at most 72 bytes",

		"confirm_delete_category": "Delete category %q? %d person(s) referencing it will be deleted too.",
		"confirm_delete_person":   "Delete person %q?",
	},
	"fr": {
		"required":      "Requis",
		"invalid_email": "Adresse e-mail invalide",
		"invalid_date":  "Date invalide (AAAA-MM-JJ attendu)",
		"too_long":      "Trop long",

		"app_title":        "Fiches",
		"nav_categories":   "Catégories",
		"nav_people":       "Personnes",
		"nav_logout":       "Déconnexion",
		"search":           "Rechercher",
		"save":             "Enregistrer",
		"cancel":           "Annuler",
		"delete":           "Supprimer",
		"edit":             "Modifier",
		"add":              "Ajouter",
		"previous":         "Précédent",
		"next":             "Suivant",
		"no_results":       "Aucun enregistrement.",
		"page_of":          "Page %d sur %d",
		"signed_in_as":     "Connecté en tant que",
		"category":         "Catégorie",
		"categories":       "Catégories",
		"people":           "Personnes",
		"full_name":        "Nom complet",
		"birth_date":       "Date de naissance",
		"address":          "Adresse",
		"contact_number":   "Téléphone",
		"email":            "E-mail",
		"username":         "Identifiant",
		"password":         "Mot de passe",
		"confirm_password": "Confirmer le mot de passe",
		"current_password": "Mot de passe actuel",
		"new_password":     "Nouveau mot de passe",
		"change_password":  "Changer le mot de passe",
		"select_category":  "Choisir une catégorie",
		"login":            "Connexion",
		"error_title":      "Une erreur est survenue",

		"flash_login_success":         "Connexion réussie !",
		"flash_login_invalid":         "Identifiant ou mot de passe invalide.",
		"flash_category_added":        "Catégorie ajoutée !",
		"flash_category_updated":      "Catégorie mise à jour !",
		"flash_category_deleted":      "Catégorie supprimée !",
		"flash_category_not_found":    "Catégorie introuvable",
		"flash_category_name_needed":  "Le nom de la catégorie est requis",
		"flash_person_added":          "Personne ajoutée !",
		"flash_person_updated":        "Personne mise à jour !",
		"flash_person_deleted":        "La personne %s a été supprimée",
		"flash_person_not_found":      "Personne introuvable",
		"flash_password_mismatch":     "Les mots de passe ne correspondent pas",
		"flash_select_category":       "Veuillez choisir une catégorie",
		"flash_invalid_category":      "Catégorie invalide",
		"flash_username_taken":        "Cet identifiant existe déjà",
		"flash_form_invalid":          "Veuillez corriger les champs indiqués",
		"flash_password_current_bad":  "Mot de passe actuel incorrect",
		"flash_password_both_needed":  "Veuillez remplir les deux champs mot de passe",
		"flash_password_new_mismatch": "Le nouveau mot de passe et sa confirmation diffèrent",
		"flash_password_saved":        "Mot de passe modifié !",
		"flash_password_too_long":     "Le mot de passe ne doit pas dépasser 72 octets",

		"confirm_delete_category": "Supprimer la catégorie %q ? %d personne(s) liée(s) seront supprimée(s).",
		"confirm_delete_person":   "Supprimer la personne %q ?",
	},
}
