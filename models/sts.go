package models

// StsCredentials is the temporary credential set issued for direct
// browser-to-bucket uploads, together with the bucket coordinates the
// frontend needs to use it.
type StsCredentials struct {
	AccessKeyID     string `json:"accessKeyId"`
	AccessKeySecret string `json:"accessKeySecret"`
	SecurityToken   string `json:"securityToken,omitempty"`
	Expiration      string `json:"expiration"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	UploadPath      string `json:"uploadPath"`
}
