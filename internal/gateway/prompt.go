package gateway

import (
	"fmt"
	"strings"

	"vizu/internal/domain"
)

// systemPrompt frames every consulting call. It stays in Portuguese because
// the product speaks Portuguese end to end.
const systemPrompt = `Você é um consultor de imagem especializado em visagismo, colorimetria, iconometria e comunicação visual pessoal.

Sua função é analisar rostos, cores, luz e estilo de forma técnica mas acessível.
Nunca use linguagem estética julgadora.
Sempre explique o motivo das recomendações.
Fale com tom humano, acessível e confiante.
Seu objetivo é ajudar a pessoa a se expressar melhor visualmente.`

// buildAnalysisPrompt produces the fixed multistep instruction for the image
// analysis call: visagism, colorimetry, iconometry, visagism tips and visual
// personality, constrained to one JSON object.
func buildAnalysisPrompt() string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString(`

TAREFA: Analise a imagem fornecida seguindo os passos abaixo.

PASSO 1: VISAGISMO (ROSTO)
Analise o rosto considerando: formato predominante, proporções faciais, linhas (retas, curvas ou mistas) e a impressão visual inicial transmitida.

PASSO 2: COLORIMETRIA
Identifique o tom e subtom de pele (quente, frio, neutro), contraste (alto, médio, baixo) e harmonia geral.
Sugira uma paleta pessoal aproximada (ex: Inverno Brilhante, Verão Suave).

PASSO 3: ICONOMETRIA (LUZ & ESTRUTURA)
Analise a volumetria e os planos do rosto.
Sugira a "Luz Ideal" (setup de iluminação) que mais valoriza essa estrutura óssea específica para fotografia e vídeo.
Exemplos: "Luz Frontal Difusa" (suaviza), "Luz Rembrandt" (drama), "Luz de Contorno" (definição).
Explique brevemente o porquê (max 10 palavras).

PASSO 4: DICAS DE VISAGISMO
Com base no formato do rosto e na iconometria, sugira 3 dicas práticas curtas (cabelo, óculos, decote ou acessórios) que harmonizem com a geometria facial.

PASSO 5: PERSONALIDADE VISUAL
Com base no conjunto, descreva a personalidade visual percebida.

SAÍDA ESPERADA (JSON):
Retorne apenas um objeto JSON com:
- season: (String) Nome da paleta sugerida.
- faceShape: (String) Formato do rosto.
- contrast: (String) "Baixo", "Médio" ou "Alto".
- traits: (Array de Strings) 3 pontos fortes visuais.
- description: (String) Um parágrafo curto (max 40 palavras).
- lightingGuide: (String) A sugestão de luz ideal e o motivo curto.
- visagismTips: (Array de Strings) 3 dicas práticas de visagismo.`)
	return b.String()
}

// BuildLookPrompt turns the analyzed profile and the chosen objective into
// the image synthesis instruction. When withEnvironment is false the scene is
// pinned to a neutral studio background.
func BuildLookPrompt(profile domain.UserProfile, objective domain.LookObjective, withEnvironment bool) string {
	setting := "White studio background."
	if withEnvironment {
		setting = fmt.Sprintf("Setting: %s.", objective.EnvironmentContext)
	}
	return fmt.Sprintf(
		"Fashion photography of a person with %s face shape and %s color season palette.\n"+
			"Wearing a %s outfit (%s).\n%s\nHigh fashion, realistic, detailed texture.",
		profile.FaceShape, profile.Season, objective.Label, objective.Desc, setting)
}

// buildExplanationPrompt asks for the short "why this works" text shown next
// to a generated look.
func buildExplanationPrompt(profile domain.UserProfile, objective domain.LookObjective) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nCONTEXTO:\nVocê acabou de sugerir um look para uma pessoa com as seguintes características:\n")
	fmt.Fprintf(&b, "- Rosto: %s\n", profile.FaceShape)
	fmt.Fprintf(&b, "- Paleta: %s\n", profile.Season)
	fmt.Fprintf(&b, "- Contraste: %s\n", profile.Contrast)
	fmt.Fprintf(&b, "- Luz Ideal (Iconometria): %s\n", profile.LightingGuide)
	fmt.Fprintf(&b, "- Objetivo do Look: %s (%s)\n", objective.Label, objective.Desc)
	b.WriteString(`
TAREFA:
Explique em 2 a 3 frases curtas por que essas escolhas (cores, modelagens e luz sugerida) funcionam bem para ela.
Use tom consultivo, não publicitário. Fale diretamente com ela ("Para você...").
Destaque como o look valoriza o visagismo dela.`)
	return b.String()
}

// buildAdvicePrompt frames an assistant query so the answer comes back in the
// request locale. Anything that is not English gets the Portuguese framing,
// matching the copy set the product ships.
func buildAdvicePrompt(query, locale string) string {
	if isEnglish(locale) {
		return "You are a personal image and style consultant. Answer in English, in a consultative tone.\n\n" + query
	}
	return "Você é um consultor de imagem e estilo pessoal. Responda em português, com tom consultivo.\n\n" + query
}

func isEnglish(locale string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), "en")
}

// Canned texts substituted when a fallback-eligible call fails. They read as
// normal product copy, never as errors.
const explanationFallback = "Look personalizado para harmonizar com sua coloração pessoal e geometria facial."

func adviceFallbackText(locale string) string {
	if isEnglish(locale) {
		return "Could not reach the assistant."
	}
	return "Erro ao conectar com o assistente."
}

func adviceEmptyText(locale string) string {
	if isEnglish(locale) {
		return "Sorry, I could not find that information."
	}
	return "Desculpe, não consegui encontrar essa informação."
}
