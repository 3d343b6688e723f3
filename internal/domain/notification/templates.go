package notification

import (
	"bytes"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	approvalSubject = "Sua conta foi aprovada! - ConstructPRO"
	resetSubject    = "Recuperação de Senha - ObraGo"
)

type approvalData struct {
	Name    string
	SiteURL string
}

type resetData struct {
	Link string
}

const approvalHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">ConstructPRO</h1>
    <p style="color: white; margin: 10px 0 0 0; font-size: 16px;">Sistema de Gestão de Obras</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #e9ecef;">
    <h2 style="color: #2c3e50; margin-top: 0;">🎉 Conta Aprovada!</h2>
    <p style="color: #495057; font-size: 16px; line-height: 1.6;">
      Olá <strong>{{ .Name | trim | default "usuário" }}</strong>,
    </p>
    <p style="color: #495057; font-size: 16px; line-height: 1.6;">
      Temos o prazer de informar que sua conta no <strong>ConstructPRO</strong> foi aprovada por um administrador e já está ativa!
    </p>
    <div style="background: #d4edda; border: 1px solid #c3e6cb; border-radius: 5px; padding: 15px; margin: 20px 0;">
      <p style="color: #155724; margin: 0; font-weight: bold;">✅ Sua conta está agora totalmente ativa</p>
      <p style="color: #155724; margin: 5px 0 0 0;">Você já pode acessar todas as funcionalidades do sistema</p>
    </div>
    <p style="color: #495057; font-size: 16px; line-height: 1.6;">
      Agora você pode fazer login e começar a usar o sistema para gerenciar suas obras, equipes, materiais e muito mais!
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{ .SiteURL }}" style="background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block;">
        Acessar ConstructPRO
      </a>
    </div>
    <hr style="border: none; border-top: 1px solid #dee2e6; margin: 30px 0;">
    <p style="color: #6c757d; font-size: 14px; margin: 0;">
      Se você não solicitou esta conta, pode ignorar este email.
    </p>
    <p style="color: #6c757d; font-size: 14px; margin: 10px 0 0 0;">
      Atenciosamente,<br>
      <strong>Equipe ConstructPRO</strong>
    </p>
  </div>
</div>
`

const resetHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <div style="width: 64px; height: 64px; background-color: #ef4444; border-radius: 8px; display: inline-flex; align-items: center; justify-content: center; margin-bottom: 20px;">
      <span style="color: white; font-size: 24px;">🏗️</span>
    </div>
    <h1 style="color: #1e3a8a; margin: 0;">Recuperação de Senha</h1>
  </div>
  <div style="background-color: #f8fafc; padding: 30px; border-radius: 8px; margin-bottom: 30px;">
    <p style="margin: 0 0 20px 0; color: #374151; font-size: 16px;">Olá,</p>
    <p style="margin: 0 0 20px 0; color: #374151; font-size: 16px;">
      Recebemos uma solicitação para redefinir a senha da sua conta no <strong>ObraGo</strong>.
    </p>
    <p style="margin: 0 0 30px 0; color: #374151; font-size: 16px;">
      Clique no botão abaixo para redefinir sua senha:
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{ .Link }}" style="background-color: #ef4444; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
        Redefinir Senha
      </a>
    </div>
    <p style="margin: 30px 0 0 0; color: #6b7280; font-size: 14px;">
      Se você não solicitou a redefinição de senha, pode ignorar este email com segurança.
    </p>
    <p style="margin: 10px 0 0 0; color: #6b7280; font-size: 14px;">
      Este link expira em 1 hora por motivos de segurança.
    </p>
  </div>
  <div style="text-align: center; color: #6b7280; font-size: 12px;">
    <p>© {{ now | date "2006" }} ObraGo - Sistema de Gestão de Obras</p>
  </div>
</div>
`

var (
	approvalTemplate = mustParse("approval", approvalHTML)
	resetTemplate    = mustParse("password_reset", resetHTML)
)

func mustParse(name, src string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Funcs(sprig.HtmlFuncMap()).Parse(src))
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
