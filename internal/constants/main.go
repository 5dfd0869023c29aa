package constants

const (
	API_PREFIX           = "/api2/json"
	DefaultApiPort       = "8006"
	DefaultNode          = "pve"
	AUTH_SCHEME          = "PVEAPIToken"
	AUTH_HEADER          = "Authorization"
	DefaultTimeout       = "60s"
	DefaultSshPort       = "22"
	DefaultSshUser       = "root"
	QmExecutable         = "qm"
	ErrorListPrefix      = "Error retrieving VMs:"
	ErrorListNodesPrefix = "Error retrieving nodes:"
	ProviderTypeName     = "pve"
)

// Environment variables read by both the provider and the CLI.
const (
	ENV_ENDPOINT         = "PROXMOX_VE_ENDPOINT"
	ENV_NODE             = "PROXMOX_VE_NODE"
	ENV_API_TOKEN_ID     = "PROXMOX_VE_API_TOKEN_ID"
	ENV_API_TOKEN_SECRET = "PROXMOX_VE_API_TOKEN_SECRET"
	ENV_INSECURE         = "PROXMOX_VE_INSECURE"
	ENV_TIMEOUT          = "PROXMOX_VE_TIMEOUT"
	ENV_SOURCE           = "PROXMOX_VE_SOURCE"
	ENV_SSH_HOST         = "PROXMOX_VE_SSH_HOST"
	ENV_SSH_PORT         = "PROXMOX_VE_SSH_PORT"
	ENV_SSH_USER         = "PROXMOX_VE_SSH_USER"
	ENV_SSH_PASSWORD     = "PROXMOX_VE_SSH_PASSWORD"
	ENV_SSH_KEY_FILE     = "PROXMOX_VE_SSH_KEY_FILE"
	ENV_SSH_PRIVATE_KEY  = "PROXMOX_VE_SSH_PRIVATE_KEY"
	ENV_SSH_KNOWN_HOSTS  = "PROXMOX_VE_SSH_KNOWN_HOSTS"
	ENV_SSH_INSECURE     = "PROXMOX_VE_SSH_INSECURE"
)
