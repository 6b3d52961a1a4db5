package authz

// Claves de recurso protegibles. En la capa de almacenamiento son strings
// abiertos (flexibilidad para agregar tabs/campos sin migrar), pero los
// call sites compilados validan contra este registro cerrado para atrapar
// typos temprano.
//
// Formas: tab:<name>, filter:<name>, field:sales.<col>, button:<name>,
// feature:<name>, config:<name>.
const (
	ResTabSales         = "tab:sales"
	ResTabOverview      = "tab:overview"
	ResTabAdmin         = "tab:admin_dashboard"
	ResTabConfig        = "tab:config"
	ResTabReports       = "tab:reports"
	ResTabSummary       = "tab:summary"
	ResTabAuditLogs     = "tab:audit_logs"
	ResTabSystemMonitor = "tab:system_monitor"

	ResFilterDateRange = "filter:sales.date_range"
	ResFilterOSMadre   = "filter:sales.os_madre"
	ResFilterOSHija    = "filter:sales.os_hija"
	ResFilterContact   = "filter:sales.contact"
	ResFilterConcept   = "filter:sales.concept"
	ResFilterStatus    = "filter:sales.status"

	ResFieldAssignedTo      = "field:sales.assigned_to"
	ResFieldStatus          = "field:sales.status_id"
	ResFieldCampaign        = "field:sales.campaign_id"
	ResFieldContactNumber   = "field:sales.contact_number"
	ResFieldOSMadre         = "field:sales.os_madre"
	ResFieldOSHija          = "field:sales.os_hija"
	ResFieldCommentClaro    = "field:sales.comment_claro"
	ResFieldCommentOrion    = "field:sales.comment_orion"
	ResFieldCommentDofu     = "field:sales.comment_dofu"
	ResFieldInstalledNumber = "field:sales.installed_number"

	ResButtonDownload     = "button:sales.download"
	ResButtonBackupBD     = "button:sales.backup_bd"
	ResButtonRestoreBD    = "button:sales.restore_bd"
	ResButtonDeleteBD     = "button:sales.delete_bd"
	ResButtonClearBD      = "button:sales.clear_bd"
	ResButtonTeamReport   = "button:team.download_report"
	ResFeatureStatusTgl   = "feature:user_status_toggle"
	ResFeatureTeamTiers   = "feature:team_tiers"
	ResConfigManageSkills = "config:manage_skills"
)

// resourceLabels etiqueta legible por clave (panel de permisos).
var resourceLabels = map[string]string{
	ResTabSales:         "Pestaña Ventas",
	ResTabOverview:      "Panel General",
	ResTabAdmin:         "Panel Admin",
	ResTabConfig:        "Pestaña Configuración",
	ResTabReports:       "Pestaña Reportes",
	ResTabSummary:       "Pestaña Resumen",
	ResTabAuditLogs:     "Admin: Auditoría",
	ResTabSystemMonitor: "Admin: Monitoreo",

	ResFilterDateRange: "Filtro: Fechas",
	ResFilterOSMadre:   "Filtro: OS Madre",
	ResFilterOSHija:    "Filtro: OS Hija",
	ResFilterContact:   "Filtro: Contacto",
	ResFilterConcept:   "Filtro: Concepto",
	ResFilterStatus:    "Filtro: Estado",

	ResFieldAssignedTo:      "Asignado A",
	ResFieldStatus:          "Estado",
	ResFieldCampaign:        "Campaña",
	ResFieldContactNumber:   "Contacto",
	ResFieldOSMadre:         "OS Madre",
	ResFieldOSHija:          "OS Hija",
	ResFieldCommentClaro:    "Comentario Claro",
	ResFieldCommentOrion:    "Comentario Orion",
	ResFieldCommentDofu:     "Comentario Dofu",
	ResFieldInstalledNumber: "Número Instalado",

	ResButtonDownload:     "Descargar (CSV)",
	ResButtonBackupBD:     "Backup BD",
	ResButtonRestoreBD:    "Restaurar BD",
	ResButtonDeleteBD:     "Borrar BD (todo)",
	ResButtonClearBD:      "Limpiar BD (rango)",
	ResButtonTeamReport:   "Descargar Reporte de Equipo",
	ResFeatureStatusTgl:   "Cambiar Estado Online",
	ResFeatureTeamTiers:   "Ver Niveles de Equipo",
	ResConfigManageSkills: "Gestionar Skills",
}

// DefaultTabs pestañas de navegación base: se siembran permitidas para todos
// los roles no-creator para evitar lockouts al introducir una clave nueva.
var DefaultTabs = []string{
	ResTabSales,
	ResTabOverview,
	ResTabReports,
	ResTabSummary,
}

// IsKnownResourceKey informa si la clave pertenece al registro cerrado.
func IsKnownResourceKey(key string) bool {
	_, ok := resourceLabels[key]
	return ok
}

// LabelFor devuelve la etiqueta legible de la clave, o la clave misma si no
// está registrada.
func LabelFor(key string) string {
	if l, ok := resourceLabels[key]; ok {
		return l
	}
	return key
}

// EditableSaleFields mapea columna editable de sales -> clave de recurso que
// la protege. El endpoint de edición por campo solo acepta estas columnas.
var EditableSaleFields = map[string]string{
	"assigned_to":      ResFieldAssignedTo,
	"status_id":        ResFieldStatus,
	"campaign_id":      ResFieldCampaign,
	"contact_number":   ResFieldContactNumber,
	"os_madre":         ResFieldOSMadre,
	"os_hija":          ResFieldOSHija,
	"comment_claro":    ResFieldCommentClaro,
	"comment_orion":    ResFieldCommentOrion,
	"comment_dofu":     ResFieldCommentDofu,
	"installed_number": ResFieldInstalledNumber,
}
